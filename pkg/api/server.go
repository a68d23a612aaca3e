package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host               string        // Host to bind to (default "localhost")
	Port               int           // Port to listen on (default 8080)
	ReadTimeout        time.Duration // Read timeout (default 30s)
	WriteTimeout       time.Duration // Write timeout (default 30s)
	IdleTimeout        time.Duration // Idle timeout (default 60s)
	MaxAnalysisWorkers int           // Max concurrent Evaluate/Move requests (default 100)
	MaxRolloutWorkers  int           // Max concurrent Rollout requests (default 4)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:               "localhost",
		Port:               8080,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        60 * time.Second,
		MaxAnalysisWorkers: 100,
		MaxRolloutWorkers:  4,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	engine   *Engine
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	version  string
}

// NewServer creates a new API server.
func NewServer(e *Engine, config ServerConfig, version string) *Server {
	poolConfig := PoolConfig{
		MaxAnalysisWorkers: config.MaxAnalysisWorkers,
		MaxRolloutWorkers:  config.MaxRolloutWorkers,
	}
	if poolConfig.MaxAnalysisWorkers <= 0 {
		poolConfig.MaxAnalysisWorkers = 100
	}
	if poolConfig.MaxRolloutWorkers <= 0 {
		poolConfig.MaxRolloutWorkers = 4
	}

	pool := NewWorkerPool(poolConfig)
	handlers := NewHandlersWithPool(e, version, pool)

	return &Server{
		config:   config,
		engine:   e,
		handlers: handlers,
		pool:     pool,
		version:  version,
	}
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("POST /api/evaluate", s.handlers.Evaluate)
	mux.HandleFunc("POST /api/move", s.handlers.Move)
	mux.HandleFunc("POST /api/rollout", s.handlers.Rollout)
	mux.HandleFunc("GET /api/duel/stream", s.handlers.DuelSSE)
	mux.HandleFunc("/api/ws", s.handlers.WebSocket)

	mux.HandleFunc("/api/health", s.handlers.Health)

	return corsMiddleware(loggingMiddleware(mux))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting bkgm API server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET  /api/health      - Health check")
	log.Printf("  POST /api/evaluate    - Evaluate position")
	log.Printf("  POST /api/move        - Find best reply to a roll")
	log.Printf("  POST /api/rollout     - 1296-sequence rollout")
	log.Printf("  GET  /api/duel/stream - Streamed self-play duel")
	log.Printf("  WS   /api/ws          - WebSocket for real-time analysis")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
