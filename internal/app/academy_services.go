package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
)

// courseService implements the CourseService interface
type courseService struct {
	courseRepo academy.CourseRepository
	lessonRepo academy.LessonRepository
	publisher  events.Publisher
	logger     logger.Logger
}

// NewCourseService creates a new instance of CourseService
func NewCourseService(
	courseRepo academy.CourseRepository,
	lessonRepo academy.LessonRepository,
	publisher events.Publisher,
	logger logger.Logger,
) (academy.CourseService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &courseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (s *courseService) Create(ctx context.Context, caller auth.Principal, input *academy.CourseInput) (*academy.Course, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course := &academy.Course{
		ID:              uuid.NewString(),
		InstructorID:    caller.UserID,
		Title:           input.Title,
		Description:     input.Description,
		Level:           input.Level,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, viewer *auth.Principal, query *academy.CourseQuery) ([]*academy.Course, error) {
	query.DraftsOf = ""
	query.AllDrafts = false
	switch {
	case viewer == nil:
	case viewer.IsAdmin():
		query.AllDrafts = true
	default:
		query.DraftsOf = viewer.UserID
	}

	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.courseRepo.List(ctx, query)
}

func (s *courseService) Get(ctx context.Context, viewer *auth.Principal, courseID string) (*academy.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Published && (viewer == nil || !viewer.Owns(course.InstructorID)) {
		return nil, apperr.NotFound("course %s not found", courseID)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, caller auth.Principal, courseID string, update *academy.CourseUpdate) (*academy.Course, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	course, err := s.ownedCourse(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}

	update.Apply(course)
	course.DateTimeUpdated = time.Now().UTC()

	if err := s.courseRepo.UpdateByID(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) DeleteByID(ctx context.Context, caller auth.Principal, courseID string) error {
	if _, err := s.ownedCourse(ctx, caller, courseID); err != nil {
		return err
	}
	return s.courseRepo.DeleteByID(ctx, courseID)
}

func (s *courseService) Publish(ctx context.Context, caller auth.Principal, courseID string) (*academy.Course, error) {
	course, err := s.ownedCourse(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}
	if course.Published {
		return course, nil
	}

	lessons, err := s.lessonRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if lessons == 0 {
		return nil, apperr.Invalid("course %s needs at least one lesson before publishing", courseID)
	}

	now := time.Now().UTC()
	published, err := s.courseRepo.Publish(ctx, courseID, now)
	if err != nil {
		return nil, err
	}
	if !published {
		// A concurrent publish won and already announced the course.
		return s.courseRepo.GetByID(ctx, courseID)
	}
	course.Published = true
	course.DateTimeUpdated = now

	publish(ctx, s.publisher, s.logger, events.New(events.CoursePublished, course.ID, caller.UserID, map[string]interface{}{
		"title":         course.Title,
		"instructor_id": course.InstructorID,
		"lessons":       lessons,
	}))
	return course, nil
}

func (s *courseService) AddLesson(ctx context.Context, caller auth.Principal, courseID string, input *academy.LessonInput) (*academy.Lesson, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, caller, courseID); err != nil {
		return nil, err
	}

	lesson := &academy.Lesson{
		ID:              uuid.NewString(),
		CourseID:        courseID,
		Title:           input.Title,
		Content:         input.Content,
		Position:        input.Position,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *courseService) ListLessons(ctx context.Context, viewer *auth.Principal, courseID string) ([]*academy.Lesson, error) {
	if _, err := s.Get(ctx, viewer, courseID); err != nil {
		return nil, err
	}
	return s.lessonRepo.ListByCourse(ctx, courseID)
}

// ownedCourse loads a course the caller teaches. Drafts of other instructors stay hidden.
func (s *courseService) ownedCourse(ctx context.Context, caller auth.Principal, courseID string) (*academy.Course, error) {
	course, err := s.Get(ctx, &caller, courseID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(course.InstructorID) {
		return nil, apperr.Forbidden("course %s belongs to another instructor", courseID)
	}
	return course, nil
}

// enrollmentService implements the EnrollmentService interface
type enrollmentService struct {
	enrollmentRepo academy.EnrollmentRepository
	courseRepo     academy.CourseRepository
	publisher      events.Publisher
	logger         logger.Logger
}

// NewEnrollmentService creates a new instance of EnrollmentService
func NewEnrollmentService(
	enrollmentRepo academy.EnrollmentRepository,
	courseRepo academy.CourseRepository,
	publisher events.Publisher,
	logger logger.Logger,
) (academy.EnrollmentService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		publisher:      publisher,
		logger:         logger,
	}, nil
}

func (s *enrollmentService) Enroll(ctx context.Context, caller auth.Principal, courseID string) (*academy.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, apperr.NotFound("course %s not found", courseID)
	}
	if course.InstructorID == caller.UserID {
		return nil, apperr.Invalid("instructors cannot enroll in their own course")
	}

	enrollment := &academy.Enrollment{
		ID:              uuid.NewString(),
		CourseID:        courseID,
		UserID:          caller.UserID,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.EnrollmentCreated, enrollment.ID, caller.UserID, map[string]interface{}{
		"course_id": courseID,
	}))
	return enrollment, nil
}

func (s *enrollmentService) ListForUser(ctx context.Context, userID string) ([]*academy.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, caller auth.Principal, enrollmentID string, progress int) (*academy.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, apperr.Invalid("progress must be between 0 and 100")
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != caller.UserID {
		return nil, apperr.Forbidden("enrollment %s belongs to another user", enrollmentID)
	}
	if progress < enrollment.Progress {
		return nil, apperr.Invalid("progress cannot decrease from %d to %d", enrollment.Progress, progress)
	}
	if progress == enrollment.Progress {
		return enrollment, nil
	}

	now := time.Now().UTC()
	raised, err := s.enrollmentRepo.RaiseProgress(ctx, enrollmentID, progress, now)
	if err != nil {
		return nil, err
	}
	if !raised {
		// Another update got there first. Report the stored state, or the decrease.
		current, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
		if err != nil {
			return nil, err
		}
		if progress < current.Progress {
			return nil, apperr.Invalid("progress cannot decrease from %d to %d", current.Progress, progress)
		}
		return current, nil
	}

	enrollment.Progress = progress
	if progress == 100 {
		enrollment.DateTimeCompleted = &now
		publish(ctx, s.publisher, s.logger, events.New(events.EnrollmentCompleted, enrollment.ID, caller.UserID, map[string]interface{}{
			"course_id": enrollment.CourseID,
		}))
	}
	return enrollment, nil
}
