package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormListingRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormListingRepository creates a new GORM-based ListingRepository implementation
func NewGormListingRepository(db *gorm.DB, logger logger.Logger) (marketplace.ListingRepository, error) {
	return &gormListingRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormListingRepository) Create(ctx context.Context, listing *marketplace.Listing) error {
	if err := listing.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ListingModel{}
	model.FromDomain(listing)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "listing")
	}

	r.logger.Info("Created listing with id ", listing.ID)
	return nil
}

func (r *gormListingRepository) List(ctx context.Context, query *marketplace.ListingQuery) ([]*marketplace.Listing, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ListingModel{})

	if query.SellerID != "" {
		dbQuery = dbQuery.Where("seller_id = ?", query.SellerID)
	}
	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		pattern := likePattern(query.Search)
		dbQuery = dbQuery.Where("(LOWER(title) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")", pattern, pattern)
	}
	if query.MinPrice > 0 {
		dbQuery = dbQuery.Where("price_cents >= ?", query.MinPrice)
	}
	if query.MaxPrice > 0 {
		dbQuery = dbQuery.Where("price_cents <= ?", query.MaxPrice)
	}

	var modelList []*models.ListingModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	domainList := make([]*marketplace.Listing, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormListingRepository) GetByID(ctx context.Context, listingID string) (*marketplace.Listing, error) {
	var model models.ListingModel
	if err := r.db.WithContext(ctx).Where("id = ?", listingID).First(&model).Error; err != nil {
		return nil, translateError(err, "listing "+listingID)
	}
	return model.ToDomain(), nil
}

func (r *gormListingRepository) UpdateByID(ctx context.Context, listing *marketplace.Listing) error {
	if err := listing.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("id = ? AND status = ?", listing.ID, marketplace.ListingActive).
		Updates(map[string]interface{}{
			"title":             listing.Title,
			"description":       listing.Description,
			"price_cents":       listing.PriceCents,
			"currency":          listing.Currency,
			"category":          listing.Category,
			"date_time_updated": listing.DateTimeUpdated,
		})
	if result.Error != nil {
		return translateError(result.Error, "listing")
	}
	if result.RowsAffected == 0 {
		current, err := r.GetByID(ctx, listing.ID)
		if err != nil {
			return err
		}
		return apperr.Conflict("listing %s is %s and can no longer be changed", listing.ID, current.Status)
	}

	r.logger.Info("Updated listing with id ", listing.ID)
	return nil
}

func (r *gormListingRepository) Archive(ctx context.Context, listingID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("id = ? AND status = ?", listingID, marketplace.ListingActive).
		Updates(map[string]interface{}{
			"status":            marketplace.ListingArchived,
			"date_time_updated": at,
		})
	if result.Error != nil {
		return translateError(result.Error, "listing")
	}
	if result.RowsAffected > 0 {
		r.logger.Info("Archived listing with id ", listingID)
		return nil
	}

	current, err := r.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	switch current.Status {
	case marketplace.ListingArchived:
		return nil
	case marketplace.ListingReserved:
		return apperr.Conflict("listing %s has a pending order", listingID)
	default:
		return apperr.Conflict("listing %s is %s", listingID, current.Status)
	}
}

type gormOrderRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrderRepository creates a new GORM-based OrderRepository implementation
func NewGormOrderRepository(db *gorm.DB, logger logger.Logger) (marketplace.OrderRepository, error) {
	return &gormOrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Place flips the listing from active to reserved with a conditional update, so of
// two concurrent orders only the one whose update matches a row inserts its order.
func (r *gormOrderRepository) Place(ctx context.Context, order *marketplace.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OrderModel{}
	model.FromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ListingModel{}).
			Where("id = ? AND status = ?", order.ListingID, marketplace.ListingActive).
			Updates(map[string]interface{}{
				"status":            marketplace.ListingReserved,
				"date_time_updated": order.DateTimeCreated,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.Conflict("listing %s is no longer available", order.ListingID)
		}
		return tx.Create(model).Error
	})
	if err != nil {
		if apperr.Is(err) {
			return err
		}
		return translateError(err, "order")
	}

	r.logger.Info("Placed order ", order.ID, " on listing ", order.ListingID)
	return nil
}

func (r *gormOrderRepository) Transition(ctx context.Context, t *marketplace.Transition) (*marketplace.Order, error) {
	var updated models.OrderModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", t.OrderID, t.From).
			Updates(map[string]interface{}{
				"status":            t.To,
				"date_time_updated": t.At,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.Conflict("order %s is not %s", t.OrderID, t.From)
		}

		if err := tx.Where("id = ?", t.OrderID).First(&updated).Error; err != nil {
			return err
		}

		return tx.Model(&models.ListingModel{}).
			Where("id = ?", updated.ListingID).
			Updates(map[string]interface{}{
				"status":            t.ListingStatus,
				"date_time_updated": t.At,
			}).Error
	})
	if err != nil {
		if apperr.Is(err) {
			return nil, err
		}
		return nil, translateError(err, "order "+t.OrderID)
	}

	r.logger.Info("Order ", t.OrderID, " moved from ", t.From, " to ", t.To)
	return updated.ToDomain(), nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, orderID string) (*marketplace.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&model).Error; err != nil {
		return nil, translateError(err, "order "+orderID)
	}
	return model.ToDomain(), nil
}

func (r *gormOrderRepository) List(ctx context.Context, query *marketplace.OrderQuery) ([]*marketplace.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.OrderModel{})
	switch query.Role {
	case marketplace.RoleBuyer:
		dbQuery = dbQuery.Where("buyer_id = ?", query.UserID)
	case marketplace.RoleSeller:
		dbQuery = dbQuery.Where("seller_id = ?", query.UserID)
	default:
		dbQuery = dbQuery.Where("(buyer_id = ? OR seller_id = ?)", query.UserID, query.UserID)
	}

	var modelList []*models.OrderModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	domainList := make([]*marketplace.Order, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
