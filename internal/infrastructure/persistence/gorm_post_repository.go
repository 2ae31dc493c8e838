package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPostRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPostRepository creates a new GORM-based PostRepository implementation
func NewGormPostRepository(db *gorm.DB, logger logger.Logger) (posts.PostRepository, error) {
	return &gormPostRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPostRepository) Create(ctx context.Context, post *posts.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PostModel{}
	model.FromDomain(post)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "post")
	}

	r.logger.Info("Created post with id ", post.ID)
	return nil
}

func (r *gormPostRepository) List(ctx context.Context, query *posts.PostQuery) ([]*posts.Post, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.PostModel{})

	if query.AuthorID != "" {
		dbQuery = dbQuery.Where("author_id = ?", query.AuthorID)
	}
	if query.Tag != "" {
		dbQuery = dbQuery.Where("tags LIKE ?"+likeEscape, "%,"+likeEscaper.Replace(strings.ToLower(query.Tag))+",%")
	}
	if query.Search != "" {
		pattern := likePattern(query.Search)
		dbQuery = dbQuery.Where("(LOWER(title) LIKE ?"+likeEscape+" OR LOWER(body) LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var modelList []*models.PostModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	domainList := make([]*posts.Post, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormPostRepository) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", postID).First(&model).Error; err != nil {
		return nil, translateError(err, "post "+postID)
	}
	return model.ToDomain(), nil
}

func (r *gormPostRepository) UpdateByID(ctx context.Context, post *posts.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PostModel{}
	model.FromDomain(post)

	err := updateColumns(r.db.WithContext(ctx), &models.PostModel{}, post.ID, "post "+post.ID, map[string]interface{}{
		"title":             model.Title,
		"body":              model.Body,
		"tags":              model.Tags,
		"date_time_updated": model.DateTimeUpdated,
	})
	if err != nil {
		return err
	}

	r.logger.Info("Updated post with id ", post.ID)
	return nil
}

func (r *gormPostRepository) DeleteByID(ctx context.Context, postID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", postID).Delete(&models.PostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "post "+postID)
	}

	r.logger.Info("Deleted post with id ", postID)
	return nil
}
