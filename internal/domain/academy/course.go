package academy

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course entity. Drafts are visible to the instructor and admins only.
type Course struct {
	ID              string    `validate:"required,uuid4"`
	InstructorID    string    `validate:"required,uuid4"`
	Title           string    `validate:"required,min=1,max=200"`
	Description     string    `validate:"max=5000"`
	Level           string    `validate:"required,oneof=beginner intermediate advanced"`
	Published       bool
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Course struct
func (c *Course) Validate() error {
	return validators.ValidateStruct(c)
}

// CourseInput carries the fields of a new course.
type CourseInput struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=5000"`
	Level       string `validate:"required,oneof=beginner intermediate advanced"`
}

// Validate for validating CourseInput struct
func (in *CourseInput) Validate() error {
	return validators.ValidateStruct(in)
}

// CourseUpdate is a partial course change.
type CourseUpdate struct {
	Title       *string `validate:"omitempty,min=1,max=200"`
	Description *string `validate:"omitempty,max=5000"`
	Level       *string `validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Validate for validating CourseUpdate struct
func (u *CourseUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Apply copies the set fields onto c.
func (u *CourseUpdate) Apply(c *Course) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Level != nil {
		c.Level = *u.Level
	}
}

// CourseSortColumns lists the columns courses can be sorted by.
var CourseSortColumns = []string{"date_time_created", "title"}

// CourseQuery filters the course catalogue.
type CourseQuery struct {
	query.ListQuery
	Level        string `validate:"omitempty,oneof=beginner intermediate advanced"`
	InstructorID string `validate:"omitempty,uuid4"`
	Search       string `validate:"max=100"`
	Published    *bool

	// DraftsOf adds the drafts of this instructor to the published courses.
	DraftsOf string `validate:"-"`
	// AllDrafts shows every draft. Set for admins.
	AllDrafts bool `validate:"-"`
}

// NewCourseQuery returns a CourseQuery with default paging.
func NewCourseQuery() *CourseQuery {
	return &CourseQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *CourseQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize(CourseSortColumns...)
}
