package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memobook/memobook/internal/chat"
	"github.com/memobook/memobook/internal/config"
	"github.com/memobook/memobook/internal/llm"
	"github.com/memobook/memobook/internal/storage/sqlite"
	"github.com/memobook/memobook/internal/store"
	"github.com/memobook/memobook/internal/suggest"
	"github.com/memobook/memobook/pkg/types"
)

// stubLLM satisfies llm.Client with canned responses.
type stubLLM struct{}

func (stubLLM) Complete(context.Context, string) (string, error) { return "tag1, tag2", nil }

func (stubLLM) ChatStream(context.Context, string, []llm.Turn) (*llm.Stream, error) {
	done := false
	recv := func() (string, error) {
		if done {
			return "", io.EOF
		}
		done = true
		return "ok", nil
	}
	return llm.NewStream(recv, func() error { return nil }), nil
}

func (stubLLM) GetModel() string { return "stub" }

// startTestServer boots a server on an ephemeral port backed by an
// in-memory SQLite database.
func startTestServer(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()

	kv, err := sqlite.NewKVStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	if mutate != nil {
		mutate(cfg)
	}

	memoStore := store.New(kv)
	client := stubLLM{}
	session := chat.NewSession(memoStore, client)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, _, err := Start(ctx, cfg, memoStore, suggest.New(client), session)
	require.NoError(t, err)
	return "http://" + addr
}

func TestHealthEndpoint(t *testing.T) {
	base := startTestServer(t, nil)

	resp, err := http.Get(base + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "healthy")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestMemoLifecycleOverHTTP(t *testing.T) {
	base := startTestServer(t, nil)

	// Create.
	payload := bytes.NewBufferString(`{"content":"remember the #demo"}`)
	resp, err := http.Post(base+"/api/memos", "application/json", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created types.Memo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, []string{"demo"}, created.Tags)

	// Read back.
	resp, err = http.Get(base + "/api/memos/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, base+"/api/memos/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base + "/api/memos/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSuggestTagsEndpoint(t *testing.T) {
	base := startTestServer(t, nil)

	payload := bytes.NewBufferString(`{"content":"a note"}`)
	resp, err := http.Post(base+"/api/memos/suggest-tags", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"tag1", "tag2"}, out.Tags)
}

func TestProductionModeRequiresToken(t *testing.T) {
	base := startTestServer(t, func(cfg *config.Config) {
		cfg.Security.SecurityMode = "production"
		cfg.Security.APIToken = "test-token"
	})

	resp, err := http.Get(base + "/api/memos")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, base+"/api/memos", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Health stays open for monitoring.
	resp, err = http.Get(base + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGracefulShutdown(t *testing.T) {
	kv, err := sqlite.NewKVStore(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	memoStore := store.New(kv)
	session := chat.NewSession(memoStore, stubLLM{})

	ctx, cancel := context.WithCancel(context.Background())
	addr, done, err := Start(ctx, cfg, memoStore, suggest.New(stubLLM{}), session)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()

	// Shutdown completes and signals the done channel.
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down within 3s of cancellation")
	}

	// The listener is closed once done is signalled.
	_, err = http.Get("http://" + addr + "/api/health")
	require.Error(t, err)
}
