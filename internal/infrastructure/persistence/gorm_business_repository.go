package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormBusinessRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBusinessRepository creates a new GORM-based BusinessRepository implementation
func NewGormBusinessRepository(db *gorm.DB, logger logger.Logger) (businesses.BusinessRepository, error) {
	return &gormBusinessRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBusinessRepository) Create(ctx context.Context, business *businesses.Business) error {
	if err := business.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BusinessModel{}
	model.FromDomain(business)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "business slug "+business.Slug)
	}

	r.logger.Info("Created business ", business.Slug, " with id ", business.ID)
	return nil
}

func (r *gormBusinessRepository) List(ctx context.Context, query *businesses.BusinessQuery) ([]*businesses.Business, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.BusinessModel{})

	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if query.Verified != nil {
		dbQuery = dbQuery.Where("verified = ?", *query.Verified)
	}
	if query.Search != "" {
		pattern := likePattern(query.Search)
		dbQuery = dbQuery.Where("(LOWER(name) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var modelList []*models.BusinessModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch businesses: %w", err)
	}

	domainList := make([]*businesses.Business, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormBusinessRepository) GetByID(ctx context.Context, businessID string) (*businesses.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).Where("id = ?", businessID).First(&model).Error; err != nil {
		return nil, translateError(err, "business "+businessID)
	}
	return model.ToDomain(), nil
}

func (r *gormBusinessRepository) GetBySlug(ctx context.Context, slug string) (*businesses.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, translateError(err, "business "+slug)
	}
	return model.ToDomain(), nil
}

func (r *gormBusinessRepository) SlugsWithPrefix(ctx context.Context, base string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Model(&models.BusinessModel{}).
		Where("slug = ? OR slug LIKE ?"+likeEscape, base, likeEscaper.Replace(base)+"-%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slugs: %w", err)
	}
	return slugs, nil
}

func (r *gormBusinessRepository) UpdateByID(ctx context.Context, business *businesses.Business) error {
	if err := business.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	err := updateColumns(r.db.WithContext(ctx), &models.BusinessModel{}, business.ID, "business "+business.ID, map[string]interface{}{
		"name":              business.Name,
		"description":       business.Description,
		"category":          business.Category,
		"website":           business.Website,
		"date_time_updated": business.DateTimeUpdated,
	})
	if err != nil {
		return err
	}

	r.logger.Info("Updated business with id ", business.ID)
	return nil
}

func (r *gormBusinessRepository) MarkVerified(ctx context.Context, businessID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.BusinessModel{}).
		Where("id = ? AND verified = ?", businessID, false).
		Updates(map[string]interface{}{
			"verified":          true,
			"date_time_updated": at,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "business")
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, businessID); err != nil {
			return false, err
		}
		return false, nil
	}

	r.logger.Info("Verified business with id ", businessID)
	return true, nil
}

func (r *gormBusinessRepository) DeleteByID(ctx context.Context, businessID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", businessID).Delete(&models.BusinessModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete business: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "business "+businessID)
	}

	r.logger.Info("Deleted business with id ", businessID)
	return nil
}

type gormActivityRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormActivityRepository creates a new GORM-based ActivityRepository implementation
func NewGormActivityRepository(db *gorm.DB, logger logger.Logger) (businesses.ActivityRepository, error) {
	return &gormActivityRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormActivityRepository) Create(ctx context.Context, activity *businesses.Activity) (bool, error) {
	if err := activity.Validate(); err != nil {
		return false, fmt.Errorf("validation error: %w", err)
	}

	model := &models.ActivityModel{}
	model.FromDomain(activity)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, translateError(result.Error, "activity")
	}
	return result.RowsAffected > 0, nil
}

func (r *gormActivityRepository) List(ctx context.Context, query *businesses.ActivityQuery) ([]*businesses.Activity, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ActivityModel{})

	if query.Type != "" {
		dbQuery = dbQuery.Where("type = ?", query.Type)
	}
	if query.Source != "" {
		dbQuery = dbQuery.Where("source = ?", query.Source)
	}
	if query.ActorID != "" {
		dbQuery = dbQuery.Where("actor_id = ?", query.ActorID)
	}

	var modelList []*models.ActivityModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	domainList := make([]*businesses.Activity, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormActivityRepository) CountByType(ctx context.Context) ([]*businesses.ActivityStat, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("type asc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	stats := make([]*businesses.ActivityStat, len(rows))
	for i, row := range rows {
		stats[i] = &businesses.ActivityStat{Type: row.Type, Count: row.Count}
	}
	return stats, nil
}
