package server

import (
	"context"
	"errors"
	"fmt"
	"os"

	v1 "github.com/hubverse/hub-services/internal/api/rest/v1"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/infrastructure/messaging"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/infrastructure/tracing"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ConfigPath returns CONFIG_PATH, or configs/<service>-api.yaml when it is unset.
func ConfigPath(service string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "configs/" + service + "-api.yaml"
}

// Base holds the dependencies every service binary sets up before wiring its routes.
// The proxy gets neither a database, a publisher nor a token manager.
type Base struct {
	Config    *config.ServiceConfig
	Logger    logger.Logger
	DB        *gorm.DB
	Publisher events.Publisher
	Tokens    *auth.TokenManager

	closers []func(context.Context) error
}

// Bootstrap loads the configuration of service and initializes logging, tracing and,
// for backend services, the migrated database, the event publisher and the token manager.
func Bootstrap(ctx context.Context, service string) (base *Base, err error) {
	cfg, err := config.Load(ConfigPath(service), service)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger: %w", err)
	}

	base = &Base{Config: cfg, Logger: log.With("service", ServiceName(cfg), "env", cfg.Environment)}
	defer func() {
		if err != nil {
			_ = base.Close(context.Background())
		}
	}()

	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing, ServiceName(cfg), cfg.Version, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	base.closers = append(base.closers, func(ctx context.Context) error { return shutdownTracing(ctx) })

	if service == config.ServiceProxy {
		return base, nil
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	base.DB = db
	base.closers = append(base.closers, func(context.Context) error { return persistence.CloseDB(db) })

	if err := persistence.Migrate(db, service); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	base.Logger.Info("Database migrations completed successfully")

	publisher, err := messaging.NewPublisher(&cfg.Messaging, base.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	base.Publisher = publisher
	base.closers = append(base.closers, func(context.Context) error { return publisher.Close() })

	base.Tokens, err = auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}
	return base, nil
}

// Engine returns the shared engine with /health and /health/ready mounted.
// Readiness pings the database when the service has one.
func (b *Base) Engine() *gin.Engine {
	r := NewEngine(b.Config, b.Logger)

	var ping v1.Pinger
	if b.DB != nil {
		db := b.DB
		ping = func(ctx context.Context) error { return persistence.Ping(ctx, db) }
	}
	v1.RegisterHealthRoutes(r, v1.NewHealthHandler(ServiceName(b.Config), b.Config.Version, ping))
	return r
}

// Close releases everything Bootstrap opened, in reverse order.
func (b *Base) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
