// Package main runs the community API: accounts, profiles, posts and chats.
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
	"github.com/hubverse/hub-services/internal/infrastructure/realtime"
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

	base, err := server.Bootstrap(ctx, config.ServiceCommunity)
	if err != nil {
		return err
	}
	defer closeBase(base)

	hub := realtime.NewHub(base.Logger)

	services, err := initializeServices(base, hub)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	r := base.Engine()
	v1.SetupCommunityRoutes(r, base.Tokens, *services, base.Logger)

	// WebSocket connections are hijacked, so shutdown has to close them explicitly.
	return server.Run(ctx, base.Config, r, base.Logger, hub.Close)
}

func initializeServices(base *server.Base, hub *realtime.Hub) (*v1.CommunityServices, error) {
	log := base.Logger

	userRepo, err := persistence.NewGormUserRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	profileRepo, err := persistence.NewGormProfileRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}
	postRepo, err := persistence.NewGormPostRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create post repository: %w", err)
	}
	chatRepo, err := persistence.NewGormChatRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat repository: %w", err)
	}
	messageRepo, err := persistence.NewGormMessageRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}

	authService, err := app.NewAuthService(userRepo, base.Tokens, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	userService, err := app.NewUserService(userRepo, profileRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	postService, err := app.NewPostService(postRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}
	chatService, err := app.NewChatService(chatRepo, userRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}
	messageService, err := app.NewMessageService(messageRepo, chatService, hub, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.CommunityServices{
		Auth:     authService,
		Users:    userService,
		Posts:    postService,
		Chats:    chatService,
		Messages: messageService,
		Stream:   hub,
	}, nil
}

func closeBase(base *server.Base) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := base.Close(ctx); err != nil {
		base.Logger.Error("Failed to release resources: ", err)
	}
}
