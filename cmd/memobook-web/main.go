package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/memobook/memobook/internal/chat"
	"github.com/memobook/memobook/internal/config"
	"github.com/memobook/memobook/internal/llm"
	"github.com/memobook/memobook/internal/server"
	"github.com/memobook/memobook/internal/storage/sqlite"
	"github.com/memobook/memobook/internal/store"
	"github.com/memobook/memobook/internal/suggest"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default: config/memobook.yaml if present)")
	flag.Parse()

	if *configPath == "" {
		defaultPath := "config/memobook.yaml"
		if _, err := os.Stat(defaultPath); err == nil {
			*configPath = defaultPath
			log.Printf("Using config file: %s", defaultPath)
		}
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	kv, err := sqlite.NewKVStore(cfg.Storage.DataPath + "/memobook.db")
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer kv.Close()

	memoStore := store.New(kv)

	client, err := llm.NewClient(cfg.ProviderConfig())
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	log.Printf("LLM provider: %s (%s)", cfg.LLM.Provider, client.GetModel())

	suggester := suggest.New(client)
	session := chat.NewSession(memoStore, client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done, err := server.Start(ctx, cfg, memoStore, suggester, session)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("memobook running at http://%s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	<-done // wait for in-flight requests to drain
}
