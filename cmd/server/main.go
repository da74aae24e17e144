package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cccd-intake/internal/assets"
	"cccd-intake/internal/face"
	"cccd-intake/internal/intake/handler"
	"cccd-intake/internal/intake/service"
	recordStore "cccd-intake/internal/intake/store/record"
	userStore "cccd-intake/internal/intake/store/user"
	"cccd-intake/internal/platform/config"
	"cccd-intake/internal/platform/database"
	"cccd-intake/internal/platform/httpserver"
	"cccd-intake/internal/platform/logger"
	"cccd-intake/internal/platform/metrics"
	"cccd-intake/internal/sessiontoken"
	httptransport "cccd-intake/internal/transport/http"
	"cccd-intake/migrations"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing cccd-intake",
		"addr", cfg.Addr,
		"images_dir", cfg.ImagesDir,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	var users service.UserStore
	var records service.RecordStore
	if pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pool.Migrate(ctx, migrations.FS); err != nil {
			cancel()
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		cancel()
		users = userStore.NewPostgres(pool.DB())
		records = recordStore.NewPostgres(pool.DB())
		log.Info("using postgres stores")
	} else {
		users = userStore.NewInMemory()
		records = recordStore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	assetStore, err := assets.New(cfg.ImagesDir)
	if err != nil {
		log.Error("asset store init failed", "error", err)
		os.Exit(1)
	}

	extractor := face.New(cfg.CascadePath, cfg.FaceMaxConcurrent, log)
	tokens := sessiontoken.New(cfg.SessionSigningKey, cfg.SessionTTL)

	m := metrics.New()
	svc := service.New(users, records, assetStore, extractor,
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	h := handler.New(svc, assetStore, tokens, log)
	router := httptransport.NewRouter(h, tokens, pool, m, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := pool.Close(); err != nil {
		log.Error("closing database pool failed", "error", err)
	}

	log.Info("server stopped")
}
