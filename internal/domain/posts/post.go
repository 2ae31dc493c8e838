package posts

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Post entity
type Post struct {
	ID              string    `validate:"required,uuid4"`
	AuthorID        string    `validate:"required,uuid4"`
	Title           string    `validate:"required,min=1,max=200"`
	Body            string    `validate:"required,min=1,max=10000"`
	Tags            []string  `validate:"max=10,dive,min=1,max=32,excludesall=0x2C"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Post struct
func (p *Post) Validate() error {
	return validators.ValidateStruct(p)
}

// PostInput carries the fields of a new post.
type PostInput struct {
	Title string   `validate:"required,min=1,max=200"`
	Body  string   `validate:"required,min=1,max=10000"`
	Tags  []string `validate:"max=10,dive,min=1,max=32,excludesall=0x2C"`
}

// Validate for validating PostInput struct
func (in *PostInput) Validate() error {
	return validators.ValidateStruct(in)
}

// PostUpdate is a partial post change.
type PostUpdate struct {
	Title *string   `validate:"omitempty,min=1,max=200"`
	Body  *string   `validate:"omitempty,min=1,max=10000"`
	Tags  *[]string `validate:"omitempty,max=10,dive,min=1,max=32,excludesall=0x2C"`
}

// Validate for validating PostUpdate struct
func (u *PostUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Apply copies the set fields onto p.
func (u *PostUpdate) Apply(p *Post) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Body != nil {
		p.Body = *u.Body
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
}

// PostSortColumns lists the columns posts can be sorted by.
var PostSortColumns = []string{"date_time_created", "date_time_updated", "title"}

// PostQuery filters the post list.
type PostQuery struct {
	query.ListQuery
	AuthorID string `validate:"omitempty,uuid4"`
	Tag      string `validate:"max=32"`
	Search   string `validate:"max=100"`
}

// NewPostQuery returns a PostQuery with default paging.
func NewPostQuery() *PostQuery {
	return &PostQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *PostQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize(PostSortColumns...)
}
