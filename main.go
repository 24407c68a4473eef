package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"todolists/internal/config"
	"todolists/internal/handlers"
	"todolists/internal/logging"
	"todolists/internal/seed"
	"todolists/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (default: ./todolists.toml if present)")
	flag.Parse()

	explicit := *configPath != ""
	if !explicit {
		*configPath = "todolists.toml"
	}

	// Configuration
	cfg, err := config.Load(*configPath, explicit)
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Prefix: "todolists",
	})

	// Initialize store
	s, err := openStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", "backend", cfg.Backend, "err", err)
	}
	defer s.Close()

	if err := seedStore(context.Background(), s, cfg.Seed, logger); err != nil {
		logger.Fatal("Failed to seed store", "err", err)
	}

	// Initialize handlers
	h := handlers.New(s, logger)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	h.Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "err", err)
		}
	}()

	// Start server
	logger.Info("Starting server", "addr", "http://localhost"+cfg.Addr(), "backend", cfg.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", "err", err)
	}
	logger.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Backend != config.BackendSQLite {
		return store.NewMemoryStore(), nil
	}

	if cfg.DBPath != ":memory:" {
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, err
		}
	}
	return store.NewSQLiteStore(ctx, cfg.DBPath)
}

// seedStore fills an empty store from source. A store that already holds
// lists, such as a reopened SQLite file, is left untouched.
func seedStore(ctx context.Context, s store.Store, source string, logger *log.Logger) error {
	if source == "" {
		return nil
	}

	existing, err := s.ListLists(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Skipping seed, store is not empty", "source", source, "lists", len(existing))
		return nil
	}

	var doc *seed.Document
	if source == config.SeedDefault {
		doc, err = seed.Default()
	} else {
		doc, err = seed.LoadFile(source)
	}
	if err != nil {
		return err
	}

	n, err := seed.Apply(ctx, s, doc)
	if err != nil {
		return err
	}
	logger.Info("Seeded store", "source", source, "lists", n)
	return nil
}
