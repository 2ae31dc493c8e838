// Package main runs the edge proxy in front of the backend services.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/proxy"
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

	base, err := server.Bootstrap(ctx, config.ServiceProxy)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := base.Close(closeCtx); err != nil {
			base.Logger.Error("Failed to release resources: ", err)
		}
	}()

	p, err := proxy.New(base.Config.Proxy, base.Logger)
	if err != nil {
		return fmt.Errorf("failed to create proxy: %w", err)
	}

	r := base.Engine()
	proxy.RegisterRoutes(r, p)
	for _, u := range base.Config.Proxy.Upstreams {
		base.Logger.Info("Routing ", u.Prefix, " to ", u.Name, " at ", u.Target)
	}

	return server.Run(ctx, base.Config, r, base.Logger)
}
