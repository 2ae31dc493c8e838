//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB             *gorm.DB
	UserRepo       users.UserRepository
	ProfileRepo    users.ProfileRepository
	PostRepo       posts.PostRepository
	ChatRepo       chats.ChatRepository
	MessageRepo    chats.MessageRepository
	ListingRepo    marketplace.ListingRepository
	OrderRepo      marketplace.OrderRepository
	CourseRepo     academy.CourseRepository
	LessonRepo     academy.LessonRepository
	EnrollmentRepo academy.EnrollmentRepository
	BusinessRepo   businesses.BusinessRepository
	ActivityRepo   businesses.ActivityRepository
}

// SetupTestDB initializes test database with automatic cleanup.
// Every service schema is migrated into the same database.
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	for _, service := range []string{config.ServiceCommunity, config.ServiceMarketplace, config.ServiceAcademy, config.ServiceBusiness} {
		require.NoError(t, Migrate(db, service), "Failed to migrate schema")
	}

	log := testutil.SetupTestLogger(t)
	tc := &TestContext{DB: db}

	tc.UserRepo, err = NewGormUserRepository(db, log)
	require.NoError(t, err)
	tc.ProfileRepo, err = NewGormProfileRepository(db, log)
	require.NoError(t, err)
	tc.PostRepo, err = NewGormPostRepository(db, log)
	require.NoError(t, err)
	tc.ChatRepo, err = NewGormChatRepository(db, log)
	require.NoError(t, err)
	tc.MessageRepo, err = NewGormMessageRepository(db, log)
	require.NoError(t, err)
	tc.ListingRepo, err = NewGormListingRepository(db, log)
	require.NoError(t, err)
	tc.OrderRepo, err = NewGormOrderRepository(db, log)
	require.NoError(t, err)
	tc.CourseRepo, err = NewGormCourseRepository(db, log)
	require.NoError(t, err)
	tc.LessonRepo, err = NewGormLessonRepository(db, log)
	require.NoError(t, err)
	tc.EnrollmentRepo, err = NewGormEnrollmentRepository(db, log)
	require.NoError(t, err)
	tc.BusinessRepo, err = NewGormBusinessRepository(db, log)
	require.NoError(t, err)
	tc.ActivityRepo, err = NewGormActivityRepository(db, log)
	require.NoError(t, err)

	return tc
}
