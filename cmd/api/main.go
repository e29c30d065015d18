package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/avelarde/catalog-backend/api/routes"
	product "github.com/avelarde/catalog-backend/internal/products"
	"github.com/avelarde/catalog-backend/pkg/config"
	"github.com/avelarde/catalog-backend/pkg/db"
	"github.com/avelarde/catalog-backend/pkg/logger"
	"github.com/avelarde/catalog-backend/pkg/metrics"
	"github.com/avelarde/catalog-backend/pkg/migrate"
	"github.com/avelarde/catalog-backend/pkg/storage/disk"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	storageClient, err := disk.NewClient(context.Background(), cfg.Storage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storage", err)
		os.Exit(1)
	}

	// Deployment places the shared placeholder under the storage root; new
	// products reference it until an upload arrives.
	if !storageClient.Exists(cfg.Catalog.DefaultImage) {
		ctx := logg.WithField(context.Background(), "path", filepath.Join(cfg.Storage.Root, cfg.Catalog.DefaultImage))
		logg.Warn(ctx, "default product image missing from storage root")
	}

	productService, err := product.NewService(
		product.NewRepository(dbClient.DB()),
		storageClient,
		logg,
		product.Options{
			PageSize:     cfg.Catalog.PageSize,
			DefaultImage: cfg.Catalog.DefaultImage,
		},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(metricsRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			metricsRegistry,
			dbClient,
			storageClient,
			productService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
