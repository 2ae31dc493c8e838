package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
)

// listingService implements the ListingService interface
type listingService struct {
	listingRepo marketplace.ListingRepository
	publisher   events.Publisher
	logger      logger.Logger
}

// NewListingService creates a new instance of ListingService
func NewListingService(listingRepo marketplace.ListingRepository, publisher events.Publisher, logger logger.Logger) (marketplace.ListingService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &listingService{
		listingRepo: listingRepo,
		publisher:   publisher,
		logger:      logger,
	}, nil
}

func (s *listingService) Create(ctx context.Context, caller auth.Principal, input *marketplace.ListingInput) (*marketplace.Listing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &marketplace.Listing{
		ID:              uuid.NewString(),
		SellerID:        caller.UserID,
		Title:           input.Title,
		Description:     input.Description,
		PriceCents:      input.PriceCents,
		Currency:        input.Currency,
		Category:        input.Category,
		Status:          marketplace.ListingActive,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.ListingCreated, listing.ID, caller.UserID, map[string]interface{}{
		"title":       listing.Title,
		"price_cents": listing.PriceCents,
		"currency":    listing.Currency,
		"category":    listing.Category,
	}))
	return listing, nil
}

func (s *listingService) List(ctx context.Context, query *marketplace.ListingQuery) ([]*marketplace.Listing, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.listingRepo.List(ctx, query)
}

func (s *listingService) GetByID(ctx context.Context, listingID string) (*marketplace.Listing, error) {
	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *listingService) Update(ctx context.Context, caller auth.Principal, listingID string, update *marketplace.ListingUpdate) (*marketplace.Listing, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	listing, err := s.ownedListing(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != marketplace.ListingActive {
		return nil, apperr.Conflict("listing %s is %s and can no longer be changed", listingID, listing.Status)
	}

	update.Apply(listing)
	listing.DateTimeUpdated = time.Now().UTC()

	if err := s.listingRepo.UpdateByID(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Archive withdraws an active listing. Archiving twice is a no-op.
func (s *listingService) Archive(ctx context.Context, caller auth.Principal, listingID string) error {
	if _, err := s.ownedListing(ctx, caller, listingID); err != nil {
		return err
	}
	// The repository re-checks the status so an order placed meanwhile is not lost.
	return s.listingRepo.Archive(ctx, listingID, time.Now().UTC())
}

func (s *listingService) ownedListing(ctx context.Context, caller auth.Principal, listingID string) (*marketplace.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(listing.SellerID) {
		return nil, apperr.Forbidden("listing %s belongs to another seller", listingID)
	}
	return listing, nil
}

// orderService implements the OrderService interface
type orderService struct {
	orderRepo   marketplace.OrderRepository
	listingRepo marketplace.ListingRepository
	publisher   events.Publisher
	logger      logger.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo marketplace.OrderRepository,
	listingRepo marketplace.ListingRepository,
	publisher events.Publisher,
	logger logger.Logger,
) (marketplace.OrderService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &orderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		publisher:   publisher,
		logger:      logger,
	}, nil
}

func (s *orderService) Place(ctx context.Context, caller auth.Principal, listingID string) (*marketplace.Order, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == caller.UserID {
		return nil, apperr.Invalid("sellers cannot order their own listing")
	}
	if listing.Status != marketplace.ListingActive {
		return nil, apperr.Conflict("listing %s is %s", listingID, listing.Status)
	}

	now := time.Now().UTC()
	order := &marketplace.Order{
		ID:              uuid.NewString(),
		ListingID:       listing.ID,
		BuyerID:         caller.UserID,
		SellerID:        listing.SellerID,
		AmountCents:     listing.PriceCents,
		Currency:        listing.Currency,
		Status:          marketplace.OrderPending,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	// The repository re-checks the listing status inside its transaction.
	if err := s.orderRepo.Place(ctx, order); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.OrderPlaced, order.ID, caller.UserID, map[string]interface{}{
		"listing_id":   order.ListingID,
		"seller_id":    order.SellerID,
		"amount_cents": order.AmountCents,
		"currency":     order.Currency,
	}))
	return order, nil
}

func (s *orderService) List(ctx context.Context, query *marketplace.OrderQuery) ([]*marketplace.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.orderRepo.List(ctx, query)
}

func (s *orderService) GetByID(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Involves(caller.UserID) && !caller.IsAdmin() {
		return nil, apperr.Forbidden("order %s belongs to other users", orderID)
	}
	return order, nil
}

func (s *orderService) Complete(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	order, err := s.GetByID(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(order.SellerID) {
		return nil, apperr.Forbidden("only the seller may complete order %s", orderID)
	}
	return s.transition(ctx, caller, order, marketplace.OrderCompleted, marketplace.ListingSold, events.OrderCompleted)
}

func (s *orderService) Cancel(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	order, err := s.GetByID(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, caller, order, marketplace.OrderCancelled, marketplace.ListingActive, events.OrderCancelled)
}

func (s *orderService) transition(ctx context.Context, caller auth.Principal, order *marketplace.Order, to, listingStatus, eventType string) (*marketplace.Order, error) {
	if order.Status != marketplace.OrderPending {
		return nil, apperr.Conflict("order %s is %s", order.ID, order.Status)
	}

	updated, err := s.orderRepo.Transition(ctx, &marketplace.Transition{
		OrderID:       order.ID,
		From:          marketplace.OrderPending,
		To:            to,
		ListingStatus: listingStatus,
		At:            time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(eventType, updated.ID, caller.UserID, map[string]interface{}{
		"listing_id":   updated.ListingID,
		"buyer_id":     updated.BuyerID,
		"seller_id":    updated.SellerID,
		"amount_cents": updated.AmountCents,
	}))
	return updated, nil
}
