// Package main runs the business API: the business directory and the activity feed
// built from the domain events of the other services.
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
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/infrastructure/messaging"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/server"

	"golang.org/x/sync/errgroup"
)

const consumerTag = "business-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	base, err := server.Bootstrap(ctx, config.ServiceBusiness)
	if err != nil {
		return err
	}
	defer closeBase(base)

	services, err := initializeServices(base)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	r := base.Engine()
	v1.SetupBusinessRoutes(r, base.Tokens, *services)

	// Losing the broker stops the whole process so the supervisor restarts it.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, base.Config, r, base.Logger)
	})
	if base.Config.Messaging.Enabled() {
		g.Go(func() error {
			return consumeEvents(gctx, base, services.Activities)
		})
	} else {
		base.Logger.Warn("Messaging is disabled, the activity feed will stay empty")
	}
	return g.Wait()
}

// consumeEvents records every event of the bus as an activity until ctx is done.
func consumeEvents(ctx context.Context, base *server.Base, activities businesses.ActivityService) error {
	consumer, err := messaging.NewAMQPConsumer(&base.Config.Messaging, consumerTag, []string{messaging.AllEvents}, base.Logger)
	if err != nil {
		return fmt.Errorf("failed to create event consumer: %w", err)
	}
	defer consumer.Close()

	if err := consumer.Run(ctx, activities.Record); err != nil {
		return fmt.Errorf("event consumer stopped: %w", err)
	}
	return nil
}

func initializeServices(base *server.Base) (*v1.BusinessServices, error) {
	log := base.Logger

	businessRepo, err := persistence.NewGormBusinessRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create business repository: %w", err)
	}
	activityRepo, err := persistence.NewGormActivityRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity repository: %w", err)
	}

	businessService, err := app.NewBusinessService(businessRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create business service: %w", err)
	}
	activityService, err := app.NewActivityService(activityRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.BusinessServices{Businesses: businessService, Activities: activityService}, nil
}

func closeBase(base *server.Base) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := base.Close(ctx); err != nil {
		base.Logger.Error("Failed to release resources: ", err)
	}
}
