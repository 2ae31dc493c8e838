package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
	"github.com/hubverse/hub-services/internal/pkg/strutil"
)

// postService implements the PostService interface
type postService struct {
	postRepo  posts.PostRepository
	publisher events.Publisher
	logger    logger.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(postRepo posts.PostRepository, publisher events.Publisher, logger logger.Logger) (posts.PostService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &postService{
		postRepo:  postRepo,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *postService) Create(ctx context.Context, caller auth.Principal, input *posts.PostInput) (*posts.Post, error) {
	input.Tags = strutil.NormalizeTags(input.Tags)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &posts.Post{
		ID:              uuid.NewString(),
		AuthorID:        caller.UserID,
		Title:           input.Title,
		Body:            input.Body,
		Tags:            input.Tags,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.PostCreated, post.ID, caller.UserID, map[string]interface{}{
		"title": post.Title,
		"tags":  post.Tags,
	}))
	return post, nil
}

func (s *postService) List(ctx context.Context, query *posts.PostQuery) ([]*posts.Post, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, query)
}

func (s *postService) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) Update(ctx context.Context, caller auth.Principal, postID string, update *posts.PostUpdate) (*posts.Post, error) {
	if update.Tags != nil {
		tags := strutil.NormalizeTags(*update.Tags)
		update.Tags = &tags
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	post, err := s.editablePost(ctx, caller, postID)
	if err != nil {
		return nil, err
	}

	update.Apply(post)
	post.DateTimeUpdated = time.Now().UTC()

	if err := s.postRepo.UpdateByID(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeleteByID(ctx context.Context, caller auth.Principal, postID string) error {
	if _, err := s.editablePost(ctx, caller, postID); err != nil {
		return err
	}
	return s.postRepo.DeleteByID(ctx, postID)
}

// editablePost loads a post the caller authored or may moderate.
func (s *postService) editablePost(ctx context.Context, caller auth.Principal, postID string) (*posts.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.UserID && !caller.CanModerate() {
		return nil, apperr.Forbidden("post %s belongs to another user", postID)
	}
	return post, nil
}
