package marketplace

import (
	"context"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/auth"
)

// ListingService manages listings.
type ListingService interface {
	// Create stores an active listing for the caller and publishes marketplace.listing.created.
	Create(ctx context.Context, caller auth.Principal, input *ListingInput) (*Listing, error)
	List(ctx context.Context, query *ListingQuery) ([]*Listing, error)
	GetByID(ctx context.Context, listingID string) (*Listing, error)
	// Update changes an active listing. Seller or admin only.
	Update(ctx context.Context, caller auth.Principal, listingID string, update *ListingUpdate) (*Listing, error)
	// Archive sets the listing status to archived. Seller or admin only.
	Archive(ctx context.Context, caller auth.Principal, listingID string) error
}

// OrderService runs the order state machine.
type OrderService interface {
	// Place reserves an active listing for the caller and creates a pending order.
	Place(ctx context.Context, caller auth.Principal, listingID string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
	// GetByID returns an order visible to its buyer, seller or an admin.
	GetByID(ctx context.Context, caller auth.Principal, orderID string) (*Order, error)
	// Complete moves a pending order to completed and the listing to sold.
	Complete(ctx context.Context, caller auth.Principal, orderID string) (*Order, error)
	// Cancel moves a pending order to cancelled and the listing back to active.
	Cancel(ctx context.Context, caller auth.Principal, orderID string) (*Order, error)
}

// ListingRepository defines the interface for Listing-related operations
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	List(ctx context.Context, query *ListingQuery) ([]*Listing, error)
	GetByID(ctx context.Context, listingID string) (*Listing, error)
	// UpdateByID writes the editable fields of an active listing. The status column is
	// never written; a listing that stopped being active fails with apperr.ErrConflict.
	UpdateByID(ctx context.Context, listing *Listing) error
	// Archive moves an active listing to archived. An archived listing is left as is,
	// a reserved or sold one fails with apperr.ErrConflict.
	Archive(ctx context.Context, listingID string, at time.Time) error
}

// OrderRepository defines the interface for Order-related operations
type OrderRepository interface {
	// Place reserves the listing and inserts the order in one transaction.
	// It fails with apperr.ErrConflict when the listing is no longer active.
	Place(ctx context.Context, order *Order) error
	// Transition applies a status change to a pending order and its listing in one
	// transaction. It fails with apperr.ErrConflict when the order is not in From.
	Transition(ctx context.Context, transition *Transition) (*Order, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
}
