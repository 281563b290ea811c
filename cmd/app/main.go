// @title BrandishShop API
// @version 1.0
// @description Buy and sell equipment against a gold ledger and per-user inventory.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/osse101/BrandishShop/docs"
	"github.com/osse101/BrandishShop/internal/bootstrap"
	"github.com/osse101/BrandishShop/internal/catalog"
	"github.com/osse101/BrandishShop/internal/config"
	"github.com/osse101/BrandishShop/internal/database"
	"github.com/osse101/BrandishShop/internal/economy"
	"github.com/osse101/BrandishShop/internal/inventory"
	"github.com/osse101/BrandishShop/internal/ledger"
	"github.com/osse101/BrandishShop/internal/server"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	envPath := flag.String("env", ".env", "path to an optional .env file")
	migrate := flag.Bool("migrate", true, "apply pending migrations on startup")
	flag.Parse()

	if err := run(*envPath, *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "brandishshop: %v\n", err)
		os.Exit(1)
	}
}

func run(envPath string, migrate bool) error {
	if err := config.ValidateEnvSchema(); err != nil {
		return err
	}
	cfg, err := config.Load(envPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg, Version, config.DefaultMaxLogFiles)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.DBURL, database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return err
		}
	}

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	journal, err := bootstrap.OpenReconciliationJournal(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	ledgerService := ledger.NewService(repos.Ledger)
	inventoryService := inventory.NewService(repos.Inventory)
	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:   cfg.CatalogBaseURL,
		Timeout:   cfg.CatalogTimeout,
		CacheSize: cfg.CatalogCacheSize,
		CacheTTL:  cfg.CatalogCacheTTL,
	})
	economyService := economy.NewService(ledgerService, inventoryService, catalogClient, journal, publisher,
		economy.Config{CompensationTimeout: cfg.CompensationTimeout})

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		DBPool:    dbPool,
		Economy:   economyService,
		Gold:      ledgerService,
		Inventory: inventoryService,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case runErr = <-serverErr:
		if runErr != nil {
			slog.Error("Server failed", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	shutdownErr := bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		EconomyService:     economyService,
		ResilientPublisher: publisher,
		Journal:            journal,
		DBPool:             dbPool,
	})
	return errors.Join(runErr, shutdownErr)
}
