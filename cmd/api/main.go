package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
	"github.com/niltaduartte/humano-saude-sub001/internal/config"
	"github.com/niltaduartte/humano-saude-sub001/internal/core"
	"github.com/niltaduartte/humano-saude-sub001/internal/db"
	"github.com/niltaduartte/humano-saude-sub001/internal/logging"
	"github.com/niltaduartte/humano-saude-sub001/internal/quote"
	"github.com/niltaduartte/humano-saude-sub001/internal/router"
	"github.com/niltaduartte/humano-saude-sub001/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	log, err := logging.New(cfg.Production(), cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("logger init failed", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── CATALOG ─────────────────────────
	catalogs, closeCatalogs, err := openCatalogs(ctx, cfg, log)
	if err != nil {
		log.Fatal("catalog init failed", zap.Error(err))
	}
	defer closeCatalogs()

	tables, err := config.LoadTables(cfg.QuoteTablesFile)
	if err != nil {
		log.Fatal("quote tables init failed", zap.Error(err))
	}

	// ───────────────────────── SERVICES ─────────────────────────
	quoteService := quote.NewService(catalogs, tables.Resolver(), log, quote.Options{
		CatalogTimeout: cfg.CatalogTimeout,
		Estimates:      tables.QuoteEstimates(),
	})
	quoteHandler := quote.NewHandler(quoteService, log)

	r := router.NewRouter(quoteHandler, log, router.Options{
		CORSOrigins: cfg.CORSOrigins,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("API running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("API stopped")
}

// openCatalogs picks the catalog source: Postgres first, then a snapshot
// in R2, then a snapshot on disk.
func openCatalogs(
	ctx context.Context,
	cfg config.Config,
	log *zap.Logger,
) (core.CatalogReader, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresRepository(pool), pool.Close, nil

	case cfg.CatalogSnapshotKey != "":
		r2, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, nil, err
		}
		data, err := r2.Fetch(ctx, cfg.CatalogSnapshotKey)
		if err != nil {
			return nil, nil, err
		}
		repo, err := catalog.LoadSnapshot(data)
		if err != nil {
			return nil, nil, err
		}
		logSnapshot(log, "r2", cfg.CatalogSnapshotKey, repo)
		return repo, func() {}, nil

	default:
		repo, err := catalog.LoadSnapshotFile(cfg.CatalogSnapshotFile)
		if err != nil {
			return nil, nil, err
		}
		logSnapshot(log, "file", cfg.CatalogSnapshotFile, repo)
		return repo, func() {}, nil
	}
}

func logSnapshot(log *zap.Logger, origin, name string, repo *catalog.MemoryRepository) {
	current, legacy := repo.Counts()
	log.Info("catalog snapshot loaded",
		zap.String("origin", origin),
		zap.String("name", name),
		zap.Int("current_plans", current),
		zap.Int("legacy_plans", legacy),
	)
}
