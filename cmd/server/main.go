package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/config"
	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/repository/memory"
	"github.com/herdtrack/herdtrack/internal/repository/mongodb"
	"github.com/herdtrack/herdtrack/internal/repository/sheets"
	"github.com/herdtrack/herdtrack/internal/scheduler"
	"github.com/herdtrack/herdtrack/internal/server/handlers"
	"github.com/herdtrack/herdtrack/internal/server/router"
	dashboardsvc "github.com/herdtrack/herdtrack/internal/service/dashboard"
	herdsvc "github.com/herdtrack/herdtrack/internal/service/herd"
	"github.com/herdtrack/herdtrack/pkg/clients/notify"
	"github.com/herdtrack/herdtrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	defaults := models.FarmSettings{
		FarmName:          cfg.Farm.Name,
		Location:          cfg.Farm.Location,
		CenterLat:         cfg.Farm.CenterLat,
		CenterLng:         cfg.Farm.CenterLng,
		MilkPricePerLiter: cfg.Feed.MilkPricePerLiter,
		Currency:          cfg.Farm.Currency,
	}

	var (
		herdRepo     repository.HerdRepository
		settingsRepo repository.SettingsRepository
		reportRepo   repository.ReportRepository
	)

	if cfg.MongoDB.URI != "" {
		store, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, defaults)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		herdRepo, settingsRepo, reportRepo = store, store, store
		baseLogger.Info("using mongodb store", zap.String("db", cfg.MongoDB.DBName))
	} else {
		store := memory.New(defaults)
		herdRepo, settingsRepo, reportRepo = store, store, store
		baseLogger.Info("using in-memory store")
	}

	herdService := herdsvc.NewService(herdRepo, settingsRepo, cfg.Feed, baseLogger.Named("svc.herd"))
	dashboardService := dashboardsvc.NewService(herdRepo, herdService, baseLogger.Named("svc.dashboard"))

	if cfg.Server.SeedDemoHerd {
		if err := herdService.SeedDemoHerd(context.Background()); err != nil {
			baseLogger.Error("failed to seed demo herd", zap.Error(err))
		}
	}

	var exporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err = sheets.NewSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets report export enabled")
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("alert webhook enabled")
	}

	cowHandler := handlers.NewCowHandler(herdService, baseLogger.Named("handlers.cows"))
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, baseLogger.Named("handlers.dashboard"))
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, baseLogger.Named("handlers.settings"))
	engine := router.New(cowHandler, dashboardHandler, settingsHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, herdService, dashboardService, reportRepo, exporter, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
