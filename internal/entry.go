// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jaewonE/foldernote/internal/api"
	"github.com/jaewonE/foldernote/internal/index"
	"github.com/jaewonE/foldernote/internal/mcpserver"
	"github.com/jaewonE/foldernote/internal/navservice"
	"github.com/jaewonE/foldernote/internal/resolver"
	"github.com/jaewonE/foldernote/internal/session"
	"github.com/jaewonE/foldernote/internal/settings"
	"github.com/jaewonE/foldernote/internal/sse"
	"github.com/jaewonE/foldernote/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. In MCP mode stdout carries the
	// protocol, so logs go to stderr.
	logOut := os.Stdout
	if app.mcp {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("settings_path", cfg.Settings.Path),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Bool("mcp", app.mcp))

	// Ensure vault directory exists.
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	// Initialize storage.
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Settings record (marker tags, debounce, fleeting folder).
	st, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	// Initialize SQLite tag index.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Session manager publishes activations and mode changes.
	sess := session.NewManager(store, st.Get, nil, logger, func(kind, path, detail string) {
		broker.PublishSessionEvent(kind, path, detail)
	})

	res := resolver.New(store, logger)

	// Not-found notices become transient SSE messages.
	svc := navservice.New(store, st, res, sess, db, logger, func(message string) {
		broker.PublishSessionEvent("notice", "", message)
	})

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher feeding the index and the SSE stream.
	g.Go(func() error {
		return index.Watch(gCtx, db, store, cfg.Vault.Path, logger, func(kind, path string) {
			broker.PublishVaultEvent(kind, path)
		})
	})

	if app.mcp {
		// MCP stdio mode: tools over stdin/stdout, no HTTP server.
		mcpSrv := mcpserver.New(svc, store)
		g.Go(func() error {
			logger.Info("Starting MCP server on stdio")
			return mcpSrv.ServeStdio()
		})
	} else {
		apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		// Health check endpoints (unauthenticated).
		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		// Mount API routes (including /api/events SSE) under /api.
		r.Mount("/api", apiRouter)

		httpServer := &http.Server{
			Addr:    cfg.App.HTTP.Address(),
			Handler: r,
		}

		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})

		// Handle shutdown signals.
		g.Go(func() error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-quit:
				logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			case <-gCtx.Done():
				logger.Info("Context cancelled, initiating shutdown")
			}

			logger.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
