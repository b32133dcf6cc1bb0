package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/navid-fn/feeboard/configs"
	"github.com/navid-fn/feeboard/internal/dataset"
	"github.com/navid-fn/feeboard/internal/handler"
	"github.com/navid-fn/feeboard/internal/logger"
	"github.com/navid-fn/feeboard/internal/repository"
	"github.com/navid-fn/feeboard/internal/router"
	"github.com/navid-fn/feeboard/internal/service"
	"github.com/navid-fn/feeboard/internal/storage"
	"github.com/navid-fn/feeboard/internal/theme"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := configs.AppLoad()
	log := logger.New(cfg.LogLevel)

	if cfg.DebugMode == "True" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := openSource(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open dataset")
	}
	feeRepo, err := repository.NewSnapshotFeeRepository(ctx, src)
	closeSource()
	if err != nil {
		log.WithError(err).WithField("source", src.Name()).Fatal("Failed to load dataset")
	}
	log.WithFields(logrus.Fields{
		"source":  src.Name(),
		"records": feeRepo.GetCount(),
	}).Info("Dataset loaded")

	store, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open preference store")
	}
	defer store.Close()

	defaultTheme, err := theme.Parse(cfg.Theme.Default)
	if err != nil {
		log.WithError(err).Warn("Invalid THEME_DEFAULT, using system")
		defaultTheme = theme.System
	}
	themeOpts := theme.Options{StorageKey: cfg.Theme.StorageKey, Default: defaultTheme}

	feeService := service.NewFeesService(feeRepo, cfg.Notionals)

	var limiter *rate.Limiter
	if cfg.Limit.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Limit.RPS), cfg.Limit.Burst)
	}

	routerConfig := &router.Config{
		FeeHandler:       handler.NewFeeHandler(feeService, log),
		ThemeHandler:     handler.NewThemeHandler(log),
		DashboardHandler: handler.NewDashboardHandler(feeService, log),
		ThemeSession:     handler.ThemeSession(store, themeOpts, log),
		Logger:           log,
		Limiter:          limiter,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router.NewRouter(routerConfig),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("API server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("API server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("API server shutdown complete")
}

func openSource(cfg *configs.AppConfig) (dataset.Source, func(), error) {
	switch cfg.Dataset.Source {
	case configs.SourceFile:
		return dataset.NewFileSource(cfg.Dataset.Path), func() {}, nil
	case configs.SourceClickHouse:
		src, err := dataset.NewClickHouseSource(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
}

func openStore(cfg *configs.AppConfig) (storage.PreferenceStore, error) {
	switch cfg.Theme.Store {
	case configs.SourceFile:
		return storage.NewFileStore(cfg.Theme.StorePath)
	case configs.SourceClickHouse:
		return storage.NewGormStore(cfg.DBDSN)
	}
	return nil, fmt.Errorf("unknown theme store %q", cfg.Theme.Store)
}
