package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/karimelbaz/photodesk-backend/api/routes"
	"github.com/karimelbaz/photodesk-backend/internal/branches"
	"github.com/karimelbaz/photodesk-backend/internal/dashboard"
	"github.com/karimelbaz/photodesk-backend/internal/invoices"
	"github.com/karimelbaz/photodesk-backend/internal/orders"
	"github.com/karimelbaz/photodesk-backend/internal/packages"
	"github.com/karimelbaz/photodesk-backend/internal/photos"
	"github.com/karimelbaz/photodesk-backend/internal/printrequests"
	"github.com/karimelbaz/photodesk-backend/internal/registry"
	"github.com/karimelbaz/photodesk-backend/internal/selections"
	"github.com/karimelbaz/photodesk-backend/internal/staff"
	"github.com/karimelbaz/photodesk-backend/internal/syncjobs"
	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/db"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
	"github.com/karimelbaz/photodesk-backend/pkg/migrate"
	"github.com/karimelbaz/photodesk-backend/pkg/redis"
	"github.com/karimelbaz/photodesk-backend/pkg/storage/local"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	store, err := local.New(cfg.Storage.RootDir, cfg.Storage.ThumbnailBound)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize photo storage", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := registry.NewRepository(gormDB)
	photoRepo := photos.NewRepository(gormDB)
	selectionRepo := selections.NewRepository(gormDB)
	packageRepo := packages.NewRepository(gormDB)
	printRequestRepo := printrequests.NewRepository(gormDB)
	invoiceRepo := invoices.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	syncJobRepo := syncjobs.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	branchRepo := branches.NewRepository(gormDB)

	registrySvc, err := registry.NewService(userRepo)
	exitOnError(logg, "registry service", err)

	photoSvc, err := photos.NewService(photoRepo, store)
	exitOnError(logg, "photo service", err)

	selectionSvc, err := selections.NewService(dbClient, userRepo, photoRepo, selectionRepo)
	exitOnError(logg, "selection service", err)

	printRequestSvc, err := printrequests.NewService(dbClient, userRepo, photoRepo, packageRepo, printRequestRepo)
	exitOnError(logg, "print request service", err)

	invoiceSvc, err := invoices.NewService(dbClient, userRepo, photoRepo, invoiceRepo)
	exitOnError(logg, "invoice service", err)

	orderSvc, err := orders.NewService(dbClient, userRepo, selectionRepo, orderRepo, syncJobRepo)
	exitOnError(logg, "order service", err)

	staffSvc, err := staff.NewService(staffRepo, cfg.JWT, cfg.Password)
	exitOnError(logg, "staff service", err)

	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(gormDB))
	exitOnError(logg, "dashboard service", err)

	router := routes.NewRouter(routes.RouterParams{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Media:         http.StripPrefix(cfg.Storage.PublicBaseURL, http.FileServer(http.Dir(cfg.Storage.RootDir))),
		Staff:         staffSvc,
		Registry:      registrySvc,
		Photos:        photoSvc,
		Branches:      branchRepo,
		Packages:      packageRepo,
		Selections:    selectionSvc,
		PrintRequests: printRequestSvc,
		Invoices:      invoiceSvc,
		Orders:        orderSvc,
		Dashboard:     dashboardSvc,
	})

	addr := net.JoinHostPort("", cfg.App.Port)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shutting down gracefully")
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
