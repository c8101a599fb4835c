package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"vibeandbuild/internal/capture"
	"vibeandbuild/internal/config"
	"vibeandbuild/internal/daemon"
	"vibeandbuild/internal/logging"
	"vibeandbuild/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, resolvedPath, found, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if found {
		logger.Info("config loaded", logging.String("path", resolvedPath))
	} else {
		logger.Info("no config file found, using defaults")
	}

	stores, err := store.Open(cfg)
	if err != nil {
		logger.Error("open content stores", logging.Error(err))
		return
	}

	captures, backendName, err := openCapture(ctx, cfg, logger)
	if err != nil {
		logger.Error("open capture backend", logging.Error(err))
		return
	}

	d, err := daemon.New(cfg, stores, captures, backendName, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("vibed shutting down")
	d.Stop()
}

// openCapture selects the capture backend. Firestore is used when a project
// id is configured; otherwise the daemon degrades to the local SQLite store
// with a warning rather than refusing to start.
func openCapture(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*capture.Service, string, error) {
	if cfg.FirestoreEnabled() {
		backend, err := capture.NewFirestoreBackend(ctx, cfg)
		if err == nil {
			logger.Info("capture backend ready",
				logging.String("backend", "firestore"),
				logging.String("project", cfg.Firestore.ProjectID))
			return capture.NewService(backend), "firestore", nil
		}
		logger.Warn("firestore unavailable, falling back to sqlite", logging.Error(err))
	} else {
		logger.Warn("firestore project not configured, captures stored locally")
	}

	backend, err := capture.OpenSQLiteBackend(cfg.Paths.DataDir)
	if err != nil {
		return nil, "", err
	}
	return capture.NewService(backend), "sqlite", nil
}
