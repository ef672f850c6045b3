// Package config provides configuration management for memobook.
// Settings come from an optional YAML file overlaid by environment
// variables with the MEMOBOOK_ prefix; every option has a sensible default.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/memobook/memobook/internal/llm"
)

// Config holds all configuration settings for the memobook application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"` // Server port (default: 7171)
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
}

// StorageConfig contains database and storage configuration.
type StorageConfig struct {
	DataPath string `yaml:"data_path"` // Path to data directory (default: ./data)
}

// LLMConfig contains LLM provider configuration.
type LLMConfig struct {
	Provider        string `yaml:"provider"`          // ollama, openai, anthropic (default: ollama)
	OllamaURL       string `yaml:"ollama_url"`        // Ollama API URL (default: http://localhost:11434)
	OllamaModel     string `yaml:"ollama_model"`      // Ollama model name (default: qwen2.5:7b)
	OpenAIAPIKey    string `yaml:"openai_api_key"`    // OpenAI API key
	OpenAIModel     string `yaml:"openai_model"`      // OpenAI model name (default: gpt-4o-mini)
	AnthropicAPIKey string `yaml:"anthropic_api_key"` // Anthropic API key
	AnthropicModel  string `yaml:"anthropic_model"`   // Anthropic model name (default: claude-haiku-4-5-20251001)
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string `yaml:"security_mode"` // development or production (default: development)
	APIToken     string `yaml:"api_token"`     // API authentication token (production mode)
}

// LoadConfig loads configuration from environment variables with defaults.
func LoadConfig() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadConfigFile loads configuration from a YAML file, then applies
// environment variable overrides on top. Env vars win so a deployment can
// tweak a shared file without editing it.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := buildBaseConfig()

	// File values override defaults; unmarshal into a fresh struct first so
	// absent keys don't zero out the defaults.
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	mergeConfig(cfg, &fileCfg)

	// Env vars override the file.
	applyEnv(cfg)
	return cfg, nil
}

// ProviderConfig maps the active provider's settings into the LLM
// factory's provider-agnostic form.
func (c *Config) ProviderConfig() llm.ProviderConfig {
	switch c.LLM.Provider {
	case "openai":
		return llm.ProviderConfig{Provider: "openai", APIKey: c.LLM.OpenAIAPIKey, Model: c.LLM.OpenAIModel}
	case "anthropic":
		return llm.ProviderConfig{Provider: "anthropic", APIKey: c.LLM.AnthropicAPIKey, Model: c.LLM.AnthropicModel}
	default:
		return llm.ProviderConfig{Provider: "ollama", BaseURL: c.LLM.OllamaURL, Model: c.LLM.OllamaModel}
	}
}

// buildBaseConfig constructs a Config with values from environment
// variables and defaults.
func buildBaseConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: 7171,
			Host: "127.0.0.1",
		},
		Storage: StorageConfig{
			DataPath: "./data",
		},
		LLM: LLMConfig{
			Provider:       "ollama",
			OllamaURL:      "http://localhost:11434",
			OllamaModel:    "qwen2.5:7b",
			OpenAIModel:    "gpt-4o-mini",
			AnthropicModel: "claude-haiku-4-5-20251001",
		},
		Security: SecurityConfig{
			SecurityMode: "development",
		},
	}
	applyEnv(cfg)
	return cfg
}

// mergeConfig copies non-zero file values over the defaults.
func mergeConfig(dst, src *Config) {
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Storage.DataPath != "" {
		dst.Storage.DataPath = src.Storage.DataPath
	}
	if src.LLM.Provider != "" {
		dst.LLM.Provider = src.LLM.Provider
	}
	if src.LLM.OllamaURL != "" {
		dst.LLM.OllamaURL = src.LLM.OllamaURL
	}
	if src.LLM.OllamaModel != "" {
		dst.LLM.OllamaModel = src.LLM.OllamaModel
	}
	if src.LLM.OpenAIAPIKey != "" {
		dst.LLM.OpenAIAPIKey = src.LLM.OpenAIAPIKey
	}
	if src.LLM.OpenAIModel != "" {
		dst.LLM.OpenAIModel = src.LLM.OpenAIModel
	}
	if src.LLM.AnthropicAPIKey != "" {
		dst.LLM.AnthropicAPIKey = src.LLM.AnthropicAPIKey
	}
	if src.LLM.AnthropicModel != "" {
		dst.LLM.AnthropicModel = src.LLM.AnthropicModel
	}
	if src.Security.SecurityMode != "" {
		dst.Security.SecurityMode = src.Security.SecurityMode
	}
	if src.Security.APIToken != "" {
		dst.Security.APIToken = src.Security.APIToken
	}
}

// applyEnv overlays MEMOBOOK_-prefixed environment variables.
func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvInt("MEMOBOOK_PORT", cfg.Server.Port)
	cfg.Server.Host = getEnv("MEMOBOOK_HOST", cfg.Server.Host)
	cfg.Storage.DataPath = getEnv("MEMOBOOK_DATA_PATH", cfg.Storage.DataPath)
	cfg.LLM.Provider = getEnv("MEMOBOOK_LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.OllamaURL = getEnv("MEMOBOOK_OLLAMA_URL", cfg.LLM.OllamaURL)
	cfg.LLM.OllamaModel = getEnv("MEMOBOOK_OLLAMA_MODEL", cfg.LLM.OllamaModel)
	cfg.LLM.OpenAIAPIKey = getEnv("MEMOBOOK_OPENAI_API_KEY", cfg.LLM.OpenAIAPIKey)
	cfg.LLM.OpenAIModel = getEnv("MEMOBOOK_OPENAI_MODEL", cfg.LLM.OpenAIModel)
	cfg.LLM.AnthropicAPIKey = getEnv("MEMOBOOK_ANTHROPIC_API_KEY", cfg.LLM.AnthropicAPIKey)
	cfg.LLM.AnthropicModel = getEnv("MEMOBOOK_ANTHROPIC_MODEL", cfg.LLM.AnthropicModel)
	cfg.Security.SecurityMode = getEnv("MEMOBOOK_SECURITY_MODE", cfg.Security.SecurityMode)
	cfg.Security.APIToken = getEnv("MEMOBOOK_API_TOKEN", cfg.Security.APIToken)
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. An unparseable value falls back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
