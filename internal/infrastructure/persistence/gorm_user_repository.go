package persistence

import (
	"context"
	"fmt"

	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User, profile *users.Profile) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	userModel := &models.UserModel{}
	userModel.FromDomain(user)
	profileModel := &models.ProfileModel{}
	profileModel.FromDomain(profile)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userModel).Error; err != nil {
			return err
		}
		return tx.Create(profileModel).Error
	})
	if err != nil {
		return translateError(err, "user")
	}

	r.logger.Info("Created user with id ", user.ID)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		return nil, translateError(err, "user "+userID)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*users.User, error) {
	if len(userIDs) == 0 {
		return []*users.User{}, nil
	}

	var modelList []*models.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormUserRepository) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.UserModel{})
	if query.Search != "" {
		pattern := likePattern(query.Search)
		dbQuery = dbQuery.Where("(LOWER(username) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var modelList []*models.UserModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (users.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*users.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, translateError(err, "profile of user "+userID)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) Update(ctx context.Context, profile *users.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateError(err, "profile")
	}

	r.logger.Info("Updated profile of user ", profile.UserID)
	return nil
}
