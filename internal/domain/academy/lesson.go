package academy

import (
	"time"

	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Lesson entity, ordered by Position within a course.
type Lesson struct {
	ID              string    `validate:"required,uuid4"`
	CourseID        string    `validate:"required,uuid4"`
	Title           string    `validate:"required,min=1,max=200"`
	Content         string    `validate:"max=50000"`
	Position        int       `validate:"gte=1"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating Lesson struct
func (l *Lesson) Validate() error {
	return validators.ValidateStruct(l)
}

// LessonInput carries the fields of a new lesson. A zero Position appends.
type LessonInput struct {
	Title    string `validate:"required,min=1,max=200"`
	Content  string `validate:"max=50000"`
	Position int    `validate:"gte=0"`
}

// Validate for validating LessonInput struct
func (in *LessonInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Enrollment links a learner to a published course.
type Enrollment struct {
	ID                string    `validate:"required,uuid4"`
	CourseID          string    `validate:"required,uuid4"`
	UserID            string    `validate:"required,uuid4"`
	Progress          int       `validate:"gte=0,lte=100"`
	DateTimeCreated   time.Time `validate:"required"`
	DateTimeCompleted *time.Time
}

// Validate for validating Enrollment struct
func (e *Enrollment) Validate() error {
	return validators.ValidateStruct(e)
}

// Completed reports whether the learner finished the course.
func (e *Enrollment) Completed() bool {
	return e.DateTimeCompleted != nil
}
