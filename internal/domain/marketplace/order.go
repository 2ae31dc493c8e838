package marketplace

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Order statuses
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order roles used to filter a caller's orders.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Order entity. Amount and currency are copied from the listing when placed.
type Order struct {
	ID              string    `validate:"required,uuid4"`
	ListingID       string    `validate:"required,uuid4"`
	BuyerID         string    `validate:"required,uuid4"`
	SellerID        string    `validate:"required,uuid4"`
	AmountCents     int64     `validate:"gt=0"`
	Currency        string    `validate:"required,currency"`
	Status          string    `validate:"required,oneof=pending completed cancelled"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Order struct
func (o *Order) Validate() error {
	return validators.ValidateStruct(o)
}

// Involves reports whether userID is the buyer or seller.
func (o *Order) Involves(userID string) bool {
	return o.BuyerID == userID || o.SellerID == userID
}

// Transition describes an order status change and the listing status that goes with it.
type Transition struct {
	OrderID       string
	From          string
	To            string
	ListingStatus string
	At            time.Time
}

// OrderQuery filters a caller's orders.
type OrderQuery struct {
	query.ListQuery
	UserID string `validate:"required,uuid4"`
	Role   string `validate:"omitempty,oneof=buyer seller"`
}

// NewOrderQuery returns an OrderQuery with default paging.
func NewOrderQuery(userID string) *OrderQuery {
	return &OrderQuery{ListQuery: query.New(), UserID: userID}
}

// Validate checks the filter and normalizes paging.
func (q *OrderQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize("date_time_created", "amount_cents")
}
