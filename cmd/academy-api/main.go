// Package main runs the academy API: courses, lessons and enrollments.
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

	base, err := server.Bootstrap(ctx, config.ServiceAcademy)
	if err != nil {
		return err
	}
	defer closeBase(base)

	services, err := initializeServices(base)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	r := base.Engine()
	v1.SetupAcademyRoutes(r, base.Tokens, *services)

	return server.Run(ctx, base.Config, r, base.Logger)
}

func initializeServices(base *server.Base) (*v1.AcademyServices, error) {
	log := base.Logger

	courseRepo, err := persistence.NewGormCourseRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create course repository: %w", err)
	}
	lessonRepo, err := persistence.NewGormLessonRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson repository: %w", err)
	}
	enrollmentRepo, err := persistence.NewGormEnrollmentRepository(base.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment repository: %w", err)
	}

	courseService, err := app.NewCourseService(courseRepo, lessonRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}
	enrollmentService, err := app.NewEnrollmentService(enrollmentRepo, courseRepo, base.Publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.AcademyServices{Courses: courseService, Enrollments: enrollmentService}, nil
}

func closeBase(base *server.Base) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := base.Close(ctx); err != nil {
		base.Logger.Error("Failed to release resources: ", err)
	}
}
