package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "candidate-sync/docs" // Swagger docs
	"candidate-sync/internal/api"
	"candidate-sync/internal/config"
	"candidate-sync/internal/cv"
	"candidate-sync/internal/importer"
	"candidate-sync/internal/logger"
	"candidate-sync/internal/runlock"
	"candidate-sync/internal/sheet"
	"candidate-sync/internal/storage"
	"candidate-sync/internal/store"
	httpclient "candidate-sync/pkg/http"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// @title Candidate Sync API
// @version 1.0
// @description Imports recruitment sheet tabs into the candidate store and links submitted CVs to candidates

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

const runLockKey = "candidate-sync:import:lock"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "candidate-sync")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if cfg.EnvFile == "" {
		zl.Warn(".env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore := openStore(ctx, cfg, zl)
	defer closeStore()

	// Redis is optional: without it the lock and the last report stay in process.
	lock := runlock.Lock(&runlock.Local{})
	var kv store.KV = store.NewMemoryKV()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("Redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		lock = runlock.Chain{&runlock.Local{}, runlock.NewRedis(rdb, runLockKey, cfg.RunLockTTL)}
		kv = store.NewRedisKV(rdb)
		zl.Info("Redis connected", zap.String("addr", cfg.RedisAddr))
	}

	layouts := importer.DefaultLayouts()
	if cfg.SheetLayoutFile != "" {
		layouts, err = importer.LoadLayouts(cfg.SheetLayoutFile)
		if err != nil {
			zl.Fatal("Invalid sheet layout file", zap.String("path", cfg.SheetLayoutFile), zap.Error(err))
		}
	}

	if cfg.SheetID == "" {
		zl.Warn("SHEET_ID not set, every import will report fetch_failed")
	}
	fetcher := sheet.NewFetcher(httpclient.NewClient(cfg.FetchTimeout), cfg.SheetURL(), cfg.FetchTimeout)

	reports := importer.NewReportStore(kv, 0)
	imp := importer.New(importer.Config{
		Layouts:    layouts,
		BatchSize:  cfg.BatchSize,
		BatchPause: cfg.BatchPause,
	}, st, fetcher, lock, reports, zl.Named("importer"))

	scheduler := api.NewScheduler(imp, cfg.SyncInterval, zl.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	apiSrv := api.NewAPI(api.Deps{
		Store:      st,
		Importer:   imp,
		Reports:    reports,
		CVParser:   cv.NewCVParser(httpclient.NewClient(cfg.CVFetchTimeout), zl.Named("cv")),
		WebhookKey: cfg.WebhookAPIKey,
		Logger:     zl.Named("api"),
	})
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full import runs inside the request
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Warn("Server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zl.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("Server failed", zap.Error(err))
	}

	<-idleConnsClosed
}

func openStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (storage.Store, func()) {
	if cfg.DatabaseURL == "" {
		zl.Warn("DATABASE_URL not set, using the in-memory store")
		return storage.NewMemoryStore(), func() {}
	}

	zl.Info("Connecting to database...")
	db, err := storage.NewDB(cfg.DatabaseURL, zl.Named("storage"))
	if err != nil {
		zl.Fatal("Database open failed", zap.Error(err))
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		zl.Fatal("Schema setup failed", zap.Error(err))
	}
	zl.Info("Database connected successfully")
	return db, db.Close
}
