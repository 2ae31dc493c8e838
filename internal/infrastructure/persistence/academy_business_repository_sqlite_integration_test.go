//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCourse(t *testing.T, tc *TestContext, instructorID string, published bool) *academy.Course {
	t.Helper()
	now := time.Now().UTC()
	course := &academy.Course{
		ID:              uuid.NewString(),
		InstructorID:    instructorID,
		Title:           "Go for services",
		Level:           academy.LevelBeginner,
		Published:       published,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	require.NoError(t, tc.CourseRepo.Create(context.Background(), course))
	return course
}

func TestCourseSqliteRepository_DraftVisibility(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	instructor := uuid.NewString()
	createTestCourse(t, tc, instructor, true)
	createTestCourse(t, tc, instructor, false)
	createTestCourse(t, tc, uuid.NewString(), false)

	anonymous, err := tc.CourseRepo.List(ctx, academy.NewCourseQuery())
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)

	q := academy.NewCourseQuery()
	q.DraftsOf = instructor
	own, err := tc.CourseRepo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	q = academy.NewCourseQuery()
	q.AllDrafts = true
	all, err := tc.CourseRepo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unpublished := false
	q = academy.NewCourseQuery()
	q.AllDrafts = true
	q.Published = &unpublished
	drafts, err := tc.CourseRepo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestLessonSqliteRepository_Positions(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), false)

	add := func(title string, position int) *academy.Lesson {
		l := &academy.Lesson{
			ID:              uuid.NewString(),
			CourseID:        course.ID,
			Title:           title,
			Position:        position,
			DateTimeCreated: time.Now().UTC(),
		}
		require.NoError(t, tc.LessonRepo.Create(ctx, l))
		return l
	}

	assert.Equal(t, 1, add("one", 0).Position)
	assert.Equal(t, 2, add("three", 0).Position)
	assert.Equal(t, 2, add("two", 2).Position)
	assert.Equal(t, 4, add("four", 99).Position)

	lessons, err := tc.LessonRepo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	titles := make([]string, len(lessons))
	for i, l := range lessons {
		titles[i] = l.Title
	}
	assert.Equal(t, []string{"one", "two", "three", "four"}, titles)

	count, err := tc.LessonRepo.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestEnrollmentSqliteRepository_Duplicate(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), true)
	user := uuid.NewString()

	newEnrollment := func() *academy.Enrollment {
		return &academy.Enrollment{
			ID:              uuid.NewString(),
			CourseID:        course.ID,
			UserID:          user,
			DateTimeCreated: time.Now().UTC(),
		}
	}

	require.NoError(t, tc.EnrollmentRepo.Create(ctx, newEnrollment()))
	assert.ErrorIs(t, tc.EnrollmentRepo.Create(ctx, newEnrollment()), apperr.ErrConflict)

	list, err := tc.EnrollmentRepo.ListByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCourseSqliteRepository_DeleteCascades(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), true)
	require.NoError(t, tc.LessonRepo.Create(ctx, &academy.Lesson{
		ID: uuid.NewString(), CourseID: course.ID, Title: "intro", DateTimeCreated: time.Now().UTC(),
	}))

	require.NoError(t, tc.CourseRepo.DeleteByID(ctx, course.ID))

	count, err := tc.LessonRepo.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.ErrorIs(t, tc.CourseRepo.DeleteByID(ctx, course.ID), apperr.ErrNotFound)
}

func TestBusinessSqliteRepository_Slugs(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	create := func(slug string) error {
		now := time.Now().UTC()
		return tc.BusinessRepo.Create(ctx, &businesses.Business{
			ID:              uuid.NewString(),
			OwnerID:         uuid.NewString(),
			Name:            "Corner Cafe",
			Slug:            slug,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		})
	}

	require.NoError(t, create("corner-cafe"))
	require.NoError(t, create("corner-cafe-2"))
	require.NoError(t, create("corner-cafeteria"))
	assert.ErrorIs(t, create("corner-cafe"), apperr.ErrConflict)

	slugs, err := tc.BusinessRepo.SlugsWithPrefix(ctx, "corner-cafe")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"corner-cafe", "corner-cafe-2"}, slugs)

	found, err := tc.BusinessRepo.GetBySlug(ctx, "corner-cafe-2")
	require.NoError(t, err)
	assert.Equal(t, "corner-cafe-2", found.Slug)
}

func TestActivitySqliteRepository_IdempotentAndStats(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	record := func(eventID, eventType string) bool {
		now := time.Now().UTC()
		created, err := tc.ActivityRepo.Create(ctx, &businesses.Activity{
			ID:               uuid.NewString(),
			EventID:          eventID,
			Type:             eventType,
			Source:           "community",
			DateTimeOccurred: now,
			DateTimeRecorded: now,
		})
		require.NoError(t, err)
		return created
	}

	first := uuid.NewString()
	assert.True(t, record(first, "community.post.created"))
	assert.False(t, record(first, "community.post.created"))
	assert.True(t, record(uuid.NewString(), "community.post.created"))
	assert.True(t, record(uuid.NewString(), "community.user.registered"))

	stats, err := tc.ActivityRepo.CountByType(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "community.post.created", stats[0].Type)
	assert.Equal(t, int64(2), stats[0].Count)

	q := businesses.NewActivityQuery()
	q.Type = "community.user.registered"
	list, err := tc.ActivityRepo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCourseSqliteRepository_UpdateAfterDelete(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), false)
	require.NoError(t, tc.CourseRepo.DeleteByID(ctx, course.ID))

	course.Title = "Go for services, 2nd edition"
	course.DateTimeUpdated = time.Now().UTC()
	assert.ErrorIs(t, tc.CourseRepo.UpdateByID(ctx, course), apperr.ErrNotFound)

	_, err := tc.CourseRepo.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCourseSqliteRepository_PublishOnce(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), false)

	published, err := tc.CourseRepo.Publish(ctx, course.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, published)

	published, err = tc.CourseRepo.Publish(ctx, course.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, published)

	_, err = tc.CourseRepo.Publish(ctx, uuid.NewString(), time.Now().UTC())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEnrollmentSqliteRepository_RaiseProgress(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	course := createTestCourse(t, tc, uuid.NewString(), true)
	enrollment := &academy.Enrollment{
		ID:              uuid.NewString(),
		CourseID:        course.ID,
		UserID:          uuid.NewString(),
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, tc.EnrollmentRepo.Create(ctx, enrollment))

	raised, err := tc.EnrollmentRepo.RaiseProgress(ctx, enrollment.ID, 80, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, raised)

	// a late, lower write loses
	raised, err = tc.EnrollmentRepo.RaiseProgress(ctx, enrollment.ID, 50, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, raised)

	current, err := tc.EnrollmentRepo.GetByID(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, current.Progress)
	assert.Nil(t, current.DateTimeCompleted)

	raised, err = tc.EnrollmentRepo.RaiseProgress(ctx, enrollment.ID, 100, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, raised)

	raised, err = tc.EnrollmentRepo.RaiseProgress(ctx, enrollment.ID, 100, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, raised)

	current, err = tc.EnrollmentRepo.GetByID(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, current.Progress)
	assert.NotNil(t, current.DateTimeCompleted)

	_, err = tc.EnrollmentRepo.RaiseProgress(ctx, uuid.NewString(), 10, time.Now().UTC())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBusinessSqliteRepository_UpdateAfterDeleteAndVerifyOnce(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	now := time.Now().UTC()
	business := &businesses.Business{
		ID:              uuid.NewString(),
		OwnerID:         uuid.NewString(),
		Name:            "Corner Cafe",
		Slug:            "corner-cafe",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	require.NoError(t, tc.BusinessRepo.Create(ctx, business))

	verified, err := tc.BusinessRepo.MarkVerified(ctx, business.ID, now)
	require.NoError(t, err)
	assert.True(t, verified)
	verified, err = tc.BusinessRepo.MarkVerified(ctx, business.ID, now)
	require.NoError(t, err)
	assert.False(t, verified)

	require.NoError(t, tc.BusinessRepo.DeleteByID(ctx, business.ID))
	business.Name = "Corner Cafe & Bakery"
	assert.ErrorIs(t, tc.BusinessRepo.UpdateByID(ctx, business), apperr.ErrNotFound)

	_, err = tc.BusinessRepo.GetByID(ctx, business.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
