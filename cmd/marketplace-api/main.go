// Package main runs the marketplace API: listings and orders.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/hubverse/hub-services/internal/api/rest/v1"
	"github.com/hubverse/hub-services/internal/app"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	base, err := server.Bootstrap(ctx, config.ServiceMarketplace)
	if err != nil {
		return err
	}
	defer closeBase(base)

	services, err := initializeServices(base)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	r := base.Engine()
	v1.SetupMarketplaceRoutes(r, base.Tokens, *services)

	return server.Run(ctx, base.Config, r, base.Logger)
}

func initializeServices(base *server.Base) (*v1.MarketplaceServices, error) {
	log := base.Logger

	listingRepo, err := persistence.NewGormListingRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing repository: %w", err)
	}
	orderRepo, err := persistence.NewGormOrderRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create order repository: %w", err)
	}

	listingService, err := app.NewListingService(listingRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing service: %w", err)
	}
	orderService, err := app.NewOrderService(orderRepo, listingRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.MarketplaceServices{Listings: listingService, Orders: orderService}, nil
}

func closeBase(base *server.Base) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := base.Close(ctx); err != nil {
		base.Logger.Error("Failed to release resources: ", err)
	}
}
