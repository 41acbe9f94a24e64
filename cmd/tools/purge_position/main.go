// Command purge_position removes every candidate of one position, e.g. after
// a tab was retired from the recruitment sheet.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"candidate-sync/internal/config"
	"candidate-sync/internal/logger"
	"candidate-sync/internal/storage"

	"go.uber.org/zap"
)

func main() {
	var position string
	var dryRun bool
	flag.StringVar(&position, "position", "", "Position (tab id) to purge, e.g. accountant_manager")
	flag.BoolVar(&dryRun, "dry-run", true, "If true, only list the candidates that would be deleted")
	flag.Parse()

	if position == "" {
		log.Fatal("-position is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	zl, err := logger.NewLogger(cfg.LogLevel, "console", "purge-position")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDB(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("Failed to connect to db", zap.Error(err))
	}
	defer db.Close()

	if dryRun {
		candidates, err := db.ListByPosition(ctx, position)
		if err != nil {
			zl.Fatal("List failed", zap.Error(err))
		}
		for _, c := range candidates {
			zl.Info("Would delete", zap.String("id", c.ID), zap.String("name", c.Name), zap.String("phone", c.Phone))
		}
		zl.Info("Dry run done, nothing deleted", zap.String("position", position), zap.Int("found", len(candidates)))
		return
	}

	res, err := storage.PurgePosition(ctx, db, position, zl)
	if err != nil {
		zl.Fatal("Purge failed", zap.Error(err), zap.Int("deleted", res.Deleted))
	}
	zl.Info("Done", zap.Int("found", res.Found), zap.Int("deleted", res.Deleted), zap.Int("failed", res.Failed))
}
