package businesses

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Business entity. Slug is derived from the name once and stays stable.
type Business struct {
	ID              string    `validate:"required,uuid4"`
	OwnerID         string    `validate:"required,uuid4"`
	Name            string    `validate:"required,min=1,max=120"`
	Slug            string    `validate:"required,slug,max=140"`
	Description     string    `validate:"max=5000"`
	Category        string    `validate:"max=50"`
	Website         string    `validate:"omitempty,url"`
	Verified        bool
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Business struct
func (b *Business) Validate() error {
	return validators.ValidateStruct(b)
}

// BusinessInput carries the fields of a new business.
type BusinessInput struct {
	Name        string `validate:"required,min=1,max=120"`
	Description string `validate:"max=5000"`
	Category    string `validate:"max=50"`
	Website     string `validate:"omitempty,url"`
}

// Validate for validating BusinessInput struct
func (in *BusinessInput) Validate() error {
	return validators.ValidateStruct(in)
}

// BusinessUpdate is a partial business change.
type BusinessUpdate struct {
	Name        *string `validate:"omitempty,min=1,max=120"`
	Description *string `validate:"omitempty,max=5000"`
	Category    *string `validate:"omitempty,max=50"`
	Website     *string `validate:"omitempty,url"`
}

// Validate for validating BusinessUpdate struct
func (u *BusinessUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Apply copies the set fields onto b.
func (u *BusinessUpdate) Apply(b *Business) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.Website != nil {
		b.Website = *u.Website
	}
}

// BusinessSortColumns lists the columns businesses can be sorted by.
var BusinessSortColumns = []string{"date_time_created", "name"}

// BusinessQuery filters the business directory.
type BusinessQuery struct {
	query.ListQuery
	Category string `validate:"max=50"`
	Verified *bool
	Search   string `validate:"max=100"`
}

// NewBusinessQuery returns a BusinessQuery with default paging.
func NewBusinessQuery() *BusinessQuery {
	return &BusinessQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *BusinessQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize(BusinessSortColumns...)
}
