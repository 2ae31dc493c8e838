package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCourseRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCourseRepository creates a new GORM-based CourseRepository implementation
func NewGormCourseRepository(db *gorm.DB, logger logger.Logger) (academy.CourseRepository, error) {
	return &gormCourseRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCourseRepository) Create(ctx context.Context, course *academy.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CourseModel{}
	model.FromDomain(course)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "course")
	}

	r.logger.Info("Created course with id ", course.ID)
	return nil
}

func (r *gormCourseRepository) List(ctx context.Context, query *academy.CourseQuery) ([]*academy.Course, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.CourseModel{})

	switch {
	case query.AllDrafts:
	case query.DraftsOf != "":
		dbQuery = dbQuery.Where("(published = ? OR instructor_id = ?)", true, query.DraftsOf)
	default:
		dbQuery = dbQuery.Where("published = ?", true)
	}

	if query.Published != nil {
		dbQuery = dbQuery.Where("published = ?", *query.Published)
	}
	if query.Level != "" {
		dbQuery = dbQuery.Where("level = ?", query.Level)
	}
	if query.InstructorID != "" {
		dbQuery = dbQuery.Where("instructor_id = ?", query.InstructorID)
	}
	if query.Search != "" {
		pattern := likePattern(query.Search)
		dbQuery = dbQuery.Where("(LOWER(title) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var modelList []*models.CourseModel
	err := dbQuery.
		Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	domainList := make([]*academy.Course, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCourseRepository) GetByID(ctx context.Context, courseID string) (*academy.Course, error) {
	var model models.CourseModel
	if err := r.db.WithContext(ctx).Where("id = ?", courseID).First(&model).Error; err != nil {
		return nil, translateError(err, "course "+courseID)
	}
	return model.ToDomain(), nil
}

func (r *gormCourseRepository) UpdateByID(ctx context.Context, course *academy.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	err := updateColumns(r.db.WithContext(ctx), &models.CourseModel{}, course.ID, "course "+course.ID, map[string]interface{}{
		"title":             course.Title,
		"description":       course.Description,
		"level":             course.Level,
		"date_time_updated": course.DateTimeUpdated,
	})
	if err != nil {
		return err
	}

	r.logger.Info("Updated course with id ", course.ID)
	return nil
}

func (r *gormCourseRepository) Publish(ctx context.Context, courseID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.CourseModel{}).
		Where("id = ? AND published = ?", courseID, false).
		Updates(map[string]interface{}{
			"published":         true,
			"date_time_updated": at,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "course")
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, courseID); err != nil {
			return false, err
		}
		return false, nil
	}

	r.logger.Info("Published course with id ", courseID)
	return true, nil
}

func (r *gormCourseRepository) DeleteByID(ctx context.Context, courseID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.LessonModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.EnrollmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", courseID).Delete(&models.CourseModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translateError(err, "course "+courseID)
	}

	r.logger.Info("Deleted course with id ", courseID)
	return nil
}

type gormLessonRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormLessonRepository creates a new GORM-based LessonRepository implementation
func NewGormLessonRepository(db *gorm.DB, logger logger.Logger) (academy.LessonRepository, error) {
	return &gormLessonRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormLessonRepository) Create(ctx context.Context, lesson *academy.Lesson) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&models.LessonModel{}).
			Where("course_id = ?", lesson.CourseID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}

		if lesson.Position == 0 || lesson.Position > last {
			lesson.Position = last + 1
		} else {
			err := tx.Model(&models.LessonModel{}).
				Where("course_id = ? AND position >= ?", lesson.CourseID, lesson.Position).
				Update("position", gorm.Expr("position + 1")).Error
			if err != nil {
				return err
			}
		}

		if err := lesson.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		model := &models.LessonModel{}
		model.FromDomain(lesson)
		return tx.Create(model).Error
	})
	if err != nil {
		return translateError(err, "lesson")
	}

	r.logger.Info("Created lesson ", lesson.ID, " at position ", lesson.Position)
	return nil
}

func (r *gormLessonRepository) ListByCourse(ctx context.Context, courseID string) ([]*academy.Lesson, error) {
	var modelList []*models.LessonModel
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lessons: %w", err)
	}

	domainList := make([]*academy.Lesson, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLessonRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LessonModel{}).Where("course_id = ?", courseID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

type gormEnrollmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormEnrollmentRepository creates a new GORM-based EnrollmentRepository implementation
func NewGormEnrollmentRepository(db *gorm.DB, logger logger.Logger) (academy.EnrollmentRepository, error) {
	return &gormEnrollmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, enrollment *academy.Enrollment) error {
	if err := enrollment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.EnrollmentModel{}
	model.FromDomain(enrollment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "enrollment")
	}

	r.logger.Info("Enrolled user ", enrollment.UserID, " in course ", enrollment.CourseID)
	return nil
}

func (r *gormEnrollmentRepository) GetByID(ctx context.Context, enrollmentID string) (*academy.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", enrollmentID).First(&model).Error; err != nil {
		return nil, translateError(err, "enrollment "+enrollmentID)
	}
	return model.ToDomain(), nil
}

func (r *gormEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*academy.Enrollment, error) {
	var modelList []*models.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_time_created desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	domainList := make([]*academy.Enrollment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormEnrollmentRepository) RaiseProgress(ctx context.Context, enrollmentID string, progress int, at time.Time) (bool, error) {
	columns := map[string]interface{}{"progress": progress}
	if progress == 100 {
		columns["date_time_completed"] = at
	}

	// Concurrent updates only ever move progress forward, and only one of them can
	// cross into completion.
	result := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Where("id = ? AND progress < ?", enrollmentID, progress).
		Updates(columns)
	if result.Error != nil {
		return false, translateError(result.Error, "enrollment")
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, enrollmentID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
