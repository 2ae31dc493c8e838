package models

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/academy"
)

// CourseModel is the GORM database model for courses
type CourseModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	InstructorID    string    `gorm:"not null;index;type:varchar(36)"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Description     string    `gorm:"type:text"`
	Level           string    `gorm:"not null;type:varchar(20)"`
	Published       bool      `gorm:"not null;default:false;index"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CourseModel) TableName() string {
	return "courses"
}

// ToDomain converts GORM model to domain entity
func (m *CourseModel) ToDomain() *academy.Course {
	return &academy.Course{
		ID:              m.ID,
		InstructorID:    m.InstructorID,
		Title:           m.Title,
		Description:     m.Description,
		Level:           m.Level,
		Published:       m.Published,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CourseModel) FromDomain(c *academy.Course) {
	m.ID = c.ID
	m.InstructorID = c.InstructorID
	m.Title = c.Title
	m.Description = c.Description
	m.Level = c.Level
	m.Published = c.Published
	m.DateTimeCreated = c.DateTimeCreated
	m.DateTimeUpdated = c.DateTimeUpdated
}

// LessonModel is the GORM database model for lessons
type LessonModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	CourseID        string    `gorm:"not null;index;type:varchar(36)"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Content         string    `gorm:"type:text"`
	Position        int       `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (LessonModel) TableName() string {
	return "lessons"
}

// ToDomain converts GORM model to domain entity
func (m *LessonModel) ToDomain() *academy.Lesson {
	return &academy.Lesson{
		ID:              m.ID,
		CourseID:        m.CourseID,
		Title:           m.Title,
		Content:         m.Content,
		Position:        m.Position,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *LessonModel) FromDomain(l *academy.Lesson) {
	m.ID = l.ID
	m.CourseID = l.CourseID
	m.Title = l.Title
	m.Content = l.Content
	m.Position = l.Position
	m.DateTimeCreated = l.DateTimeCreated
}

// EnrollmentModel is the GORM database model for enrollments
type EnrollmentModel struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)"`
	CourseID          string    `gorm:"not null;uniqueIndex:idx_enrollments_course_user;type:varchar(36)"`
	UserID            string    `gorm:"not null;uniqueIndex:idx_enrollments_course_user;index;type:varchar(36)"`
	Progress          int       `gorm:"not null;default:0"`
	DateTimeCreated   time.Time `gorm:"not null"`
	DateTimeCompleted *time.Time
}

// TableName specifies the table name for GORM
func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// ToDomain converts GORM model to domain entity
func (m *EnrollmentModel) ToDomain() *academy.Enrollment {
	return &academy.Enrollment{
		ID:                m.ID,
		CourseID:          m.CourseID,
		UserID:            m.UserID,
		Progress:          m.Progress,
		DateTimeCreated:   m.DateTimeCreated,
		DateTimeCompleted: m.DateTimeCompleted,
	}
}

// FromDomain converts domain entity to GORM model
func (m *EnrollmentModel) FromDomain(e *academy.Enrollment) {
	m.ID = e.ID
	m.CourseID = e.CourseID
	m.UserID = e.UserID
	m.Progress = e.Progress
	m.DateTimeCreated = e.DateTimeCreated
	m.DateTimeCompleted = e.DateTimeCompleted
}
