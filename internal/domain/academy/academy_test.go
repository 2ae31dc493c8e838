//go:build unit
// +build unit

package academy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCourseValidation(t *testing.T) {
	now := time.Now()
	c := &Course{
		ID:              uuid.NewString(),
		InstructorID:    uuid.NewString(),
		Title:           "Go basics",
		Level:           LevelBeginner,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	assert.NoError(t, c.Validate())

	c.Level = "expert"
	assert.Error(t, c.Validate())
}

func TestCourseUpdateApply(t *testing.T) {
	level := LevelAdvanced
	c := &Course{Title: "Go", Level: LevelBeginner}
	(&CourseUpdate{Level: &level}).Apply(c)
	assert.Equal(t, LevelAdvanced, c.Level)
	assert.Equal(t, "Go", c.Title)
}

func TestLessonInputValidation(t *testing.T) {
	assert.NoError(t, (&LessonInput{Title: "Intro"}).Validate())
	assert.Error(t, (&LessonInput{Title: ""}).Validate())
	assert.Error(t, (&LessonInput{Title: "Intro", Position: -1}).Validate())
}

func TestEnrollmentProgressBounds(t *testing.T) {
	e := &Enrollment{
		ID:              uuid.NewString(),
		CourseID:        uuid.NewString(),
		UserID:          uuid.NewString(),
		Progress:        100,
		DateTimeCreated: time.Now(),
	}
	assert.NoError(t, e.Validate())
	assert.False(t, e.Completed())

	e.Progress = 101
	assert.Error(t, e.Validate())
}
