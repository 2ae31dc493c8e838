package marketplace

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Listing statuses
const (
	ListingActive   = "active"
	ListingReserved = "reserved"
	ListingSold     = "sold"
	ListingArchived = "archived"
)

// Listing entity
type Listing struct {
	ID              string    `validate:"required,uuid4"`
	SellerID        string    `validate:"required,uuid4"`
	Title           string    `validate:"required,min=1,max=200"`
	Description     string    `validate:"max=5000"`
	PriceCents      int64     `validate:"gt=0"`
	Currency        string    `validate:"required,currency"`
	Category        string    `validate:"max=50"`
	Status          string    `validate:"required,oneof=active reserved sold archived"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Listing struct
func (l *Listing) Validate() error {
	return validators.ValidateStruct(l)
}

// ListingInput carries the fields of a new listing.
type ListingInput struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=5000"`
	PriceCents  int64  `validate:"gt=0"`
	Currency    string `validate:"required,currency"`
	Category    string `validate:"max=50"`
}

// Validate for validating ListingInput struct
func (in *ListingInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ListingUpdate is a partial listing change.
type ListingUpdate struct {
	Title       *string `validate:"omitempty,min=1,max=200"`
	Description *string `validate:"omitempty,max=5000"`
	PriceCents  *int64  `validate:"omitempty,gt=0"`
	Currency    *string `validate:"omitempty,currency"`
	Category    *string `validate:"omitempty,max=50"`
}

// Validate for validating ListingUpdate struct
func (u *ListingUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Apply copies the set fields onto l.
func (u *ListingUpdate) Apply(l *Listing) {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.PriceCents != nil {
		l.PriceCents = *u.PriceCents
	}
	if u.Currency != nil {
		l.Currency = *u.Currency
	}
	if u.Category != nil {
		l.Category = *u.Category
	}
}

// ListingSortColumns lists the columns listings can be sorted by.
var ListingSortColumns = []string{"date_time_created", "price_cents", "title"}

// ListingQuery filters the listing search.
type ListingQuery struct {
	query.ListQuery
	SellerID string `validate:"omitempty,uuid4"`
	Category string `validate:"max=50"`
	Status   string `validate:"omitempty,oneof=active reserved sold archived"`
	Search   string `validate:"max=100"`
	MinPrice int64  `validate:"gte=0"`
	MaxPrice int64  `validate:"gte=0"`
}

// NewListingQuery returns a ListingQuery with default paging.
func NewListingQuery() *ListingQuery {
	return &ListingQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *ListingQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return apperr.Invalid("min_price must not exceed max_price")
	}
	return q.Normalize(ListingSortColumns...)
}
