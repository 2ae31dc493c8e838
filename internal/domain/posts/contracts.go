package posts

import (
	"context"

	"github.com/hubverse/hub-services/internal/pkg/auth"
)

// PostService manages community posts.
type PostService interface {
	// Create stores a post authored by the caller and publishes community.post.created.
	Create(ctx context.Context, caller auth.Principal, input *PostInput) (*Post, error)

	// List returns posts matching the query.
	List(ctx context.Context, query *PostQuery) ([]*Post, error)

	// GetByID returns one post.
	GetByID(ctx context.Context, postID string) (*Post, error)

	// Update changes a post. Only the author, moderators and admins may update.
	Update(ctx context.Context, caller auth.Principal, postID string, update *PostUpdate) (*Post, error)

	// DeleteByID removes a post. Only the author, moderators and admins may delete.
	DeleteByID(ctx context.Context, caller auth.Principal, postID string) error
}

// PostRepository defines the interface for Post-related operations
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	List(ctx context.Context, query *PostQuery) ([]*Post, error)
	GetByID(ctx context.Context, postID string) (*Post, error)
	UpdateByID(ctx context.Context, post *Post) error
	DeleteByID(ctx context.Context, postID string) error
}
