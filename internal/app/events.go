package app

import (
	"context"
	"errors"

	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/logger"
)

var errNilPublisher = errors.New("event publisher is required")

// publish sends event and only logs a failure.
func publish(ctx context.Context, publisher events.Publisher, logger logger.Logger, event *events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish ", event.Type, " for ", event.SubjectID, ": ", err)
	}
}
