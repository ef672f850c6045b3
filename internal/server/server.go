// Package server provides HTTP server initialization and lifecycle
// management for the memobook web UI.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/memobook/memobook/internal/chat"
	"github.com/memobook/memobook/internal/config"
	"github.com/memobook/memobook/internal/store"
	"github.com/memobook/memobook/internal/suggest"
	"github.com/memobook/memobook/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start initializes and starts the HTTP server. It returns the actual
// address being listened on (useful for testing with port 0) and a channel
// that is closed once shutdown has completed. The server shuts down
// gracefully when ctx is cancelled; callers should wait on the done
// channel before exiting so in-flight requests get their drain window.
func Start(ctx context.Context, cfg *config.Config, memoStore *store.Store, suggester *suggest.Suggester, session *chat.Session) (string, <-chan struct{}, error) {
	api := handlers.NewAPIHandlers(memoStore, suggester)
	activity := handlers.NewActivityHandler(memoStore)
	chatHandler := handlers.NewChatHandler(session)

	// API routes (require auth in production mode).
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/memos", api.ListMemos)
	apiMux.HandleFunc("POST /api/memos", api.CreateMemo)
	apiMux.HandleFunc("POST /api/memos/suggest-tags", api.SuggestTags)
	apiMux.HandleFunc("GET /api/memos/{id}", api.GetMemo)
	apiMux.HandleFunc("PATCH /api/memos/{id}", api.UpdateMemo)
	apiMux.HandleFunc("DELETE /api/memos/{id}", api.DeleteMemo)
	apiMux.HandleFunc("GET /api/tags", api.ListTags)
	apiMux.HandleFunc("GET /api/activity", activity.GetActivity)

	mux := http.NewServeMux()

	// Health endpoint — no auth required, used for monitoring.
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket chat endpoint. The upgrade handshake validates the Origin
	// header, so token auth is not applied here.
	mux.Handle("/ws/chat", chatHandler)

	rateLimiter := handlers.NewRateLimiter(10.0, 20)
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("server: failed to listen on %s: %w", addr, err)
	}
	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	return actualAddr, done, nil
}
