package academy

import (
	"context"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/auth"
)

// CourseService manages courses and their lessons. A nil viewer is an anonymous caller.
type CourseService interface {
	// Create stores a draft course owned by the caller.
	Create(ctx context.Context, caller auth.Principal, input *CourseInput) (*Course, error)

	// List returns published courses, plus drafts the viewer may see.
	List(ctx context.Context, viewer *auth.Principal, query *CourseQuery) ([]*Course, error)

	// Get returns a course. Drafts are reported as not found unless the viewer is the instructor or an admin.
	Get(ctx context.Context, viewer *auth.Principal, courseID string) (*Course, error)

	Update(ctx context.Context, caller auth.Principal, courseID string, update *CourseUpdate) (*Course, error)
	DeleteByID(ctx context.Context, caller auth.Principal, courseID string) error

	// Publish makes a course visible. It requires at least one lesson and publishes academy.course.published.
	Publish(ctx context.Context, caller auth.Principal, courseID string) (*Course, error)

	// AddLesson appends a lesson, or inserts it at the requested position.
	AddLesson(ctx context.Context, caller auth.Principal, courseID string, input *LessonInput) (*Lesson, error)

	// ListLessons returns the lessons ordered by position.
	ListLessons(ctx context.Context, viewer *auth.Principal, courseID string) ([]*Lesson, error)
}

// EnrollmentService manages enrollments and learner progress.
type EnrollmentService interface {
	// Enroll registers the caller for a published course.
	Enroll(ctx context.Context, caller auth.Principal, courseID string) (*Enrollment, error)

	// ListForUser returns the enrollments of userID.
	ListForUser(ctx context.Context, userID string) ([]*Enrollment, error)

	// UpdateProgress raises the caller's progress. Reaching 100 completes the enrollment.
	UpdateProgress(ctx context.Context, caller auth.Principal, enrollmentID string, progress int) (*Enrollment, error)
}

// CourseRepository defines the interface for Course-related operations
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	List(ctx context.Context, query *CourseQuery) ([]*Course, error)
	GetByID(ctx context.Context, courseID string) (*Course, error)
	// UpdateByID writes the editable fields. It fails with apperr.ErrNotFound when the
	// course is gone.
	UpdateByID(ctx context.Context, course *Course) error
	// Publish marks a draft course as published and reports false when it already was.
	Publish(ctx context.Context, courseID string, at time.Time) (bool, error)
	// DeleteByID removes the course together with its lessons and enrollments.
	DeleteByID(ctx context.Context, courseID string) error
}

// LessonRepository defines the interface for Lesson-related operations
type LessonRepository interface {
	// Create inserts the lesson, shifting lessons at or after its position.
	// A zero position appends after the last lesson.
	Create(ctx context.Context, lesson *Lesson) error
	ListByCourse(ctx context.Context, courseID string) ([]*Lesson, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}

// EnrollmentRepository defines the interface for Enrollment-related operations
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	GetByID(ctx context.Context, enrollmentID string) (*Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*Enrollment, error)
	// RaiseProgress stores progress only when it is above the stored value and reports
	// whether it did. Reaching 100 sets the completion time to at.
	RaiseProgress(ctx context.Context, enrollmentID string, progress int, at time.Time) (bool, error)
}
