package businesses

import (
	"context"
	"time"

	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/auth"
)

// BusinessService manages the business directory.
type BusinessService interface {
	// Create stores a business owned by the caller under a unique slug.
	Create(ctx context.Context, caller auth.Principal, input *BusinessInput) (*Business, error)
	List(ctx context.Context, query *BusinessQuery) ([]*Business, error)
	// Get resolves a business by id or slug.
	Get(ctx context.Context, idOrSlug string) (*Business, error)
	Update(ctx context.Context, caller auth.Principal, businessID string, update *BusinessUpdate) (*Business, error)
	DeleteByID(ctx context.Context, caller auth.Principal, businessID string) error
	// Verify marks a business verified. Admin only; publishes business.business.verified.
	Verify(ctx context.Context, caller auth.Principal, businessID string) (*Business, error)
}

// ActivityService records and reports domain events.
type ActivityService interface {
	// Record stores the event. Redelivered events are ignored.
	Record(ctx context.Context, event *events.Event) error
	List(ctx context.Context, query *ActivityQuery) ([]*Activity, error)
	Stats(ctx context.Context) ([]*ActivityStat, error)
}

// BusinessRepository defines the interface for Business-related operations
type BusinessRepository interface {
	// Create fails with apperr.ErrConflict when the slug is taken.
	Create(ctx context.Context, business *Business) error
	List(ctx context.Context, query *BusinessQuery) ([]*Business, error)
	GetByID(ctx context.Context, businessID string) (*Business, error)
	GetBySlug(ctx context.Context, slug string) (*Business, error)
	// SlugsWithPrefix returns existing slugs equal to base or starting with base-.
	SlugsWithPrefix(ctx context.Context, base string) ([]string, error)
	// UpdateByID writes the editable fields. Slug and verification are left alone.
	UpdateByID(ctx context.Context, business *Business) error
	// MarkVerified verifies the business and reports false when it already was.
	MarkVerified(ctx context.Context, businessID string, at time.Time) (bool, error)
	DeleteByID(ctx context.Context, businessID string) error
}

// ActivityRepository defines the interface for Activity-related operations
type ActivityRepository interface {
	// Create stores the activity and reports false when EventID was already recorded.
	Create(ctx context.Context, activity *Activity) (bool, error)
	List(ctx context.Context, query *ActivityQuery) ([]*Activity, error)
	CountByType(ctx context.Context) ([]*ActivityStat, error)
}
