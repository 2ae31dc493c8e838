//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, tc *TestContext, username string) *users.User {
	t.Helper()
	now := time.Now().UTC()
	user := &users.User{
		ID:              uuid.NewString(),
		Email:           username + "@example.com",
		Username:        username,
		PasswordHash:    "$2a$10$hash",
		Role:            auth.RoleMember,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	profile := &users.Profile{UserID: user.ID, DateTimeUpdated: now}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user, profile))
	return user
}

func TestUserSqliteRepository_CreateWithProfile(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	user := createTestUser(t, tc, "ada")

	var profile models.ProfileModel
	require.NoError(t, tc.DB.First(&profile, "user_id = ?", user.ID).Error)

	fetched, err := tc.UserRepo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
}

func TestUserSqliteRepository_DuplicateIsConflict(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	first := createTestUser(t, tc, "ada")

	now := time.Now().UTC()
	dup := &users.User{
		ID:              uuid.NewString(),
		Email:           first.Email,
		Username:        "other",
		PasswordHash:    "$2a$10$hash",
		Role:            auth.RoleMember,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	err := tc.UserRepo.Create(context.Background(), dup, &users.Profile{UserID: dup.ID, DateTimeUpdated: now})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var count int64
	tc.DB.Model(&models.ProfileModel{}).Where("user_id = ?", dup.ID).Count(&count)
	assert.Zero(t, count, "profile insert must roll back with the user")
}

func TestUserSqliteRepository_SearchAndGetByIDs(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ada := createTestUser(t, tc, "ada_lovelace")
	karl := createTestUser(t, tc, "karl")

	q := users.NewUserQuery()
	q.Search = "LOVE"
	found, err := tc.UserRepo.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ada.ID, found[0].ID)

	// "_" must not act as a wildcard.
	q = users.NewUserQuery()
	q.Search = "a_l"
	found, err = tc.UserRepo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	byIDs, err := tc.UserRepo.GetByIDs(context.Background(), []string{karl.ID, uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, karl.ID, byIDs[0].ID)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	_, err := tc.UserRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostSqliteRepository_ListFilters(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	author := createTestUser(t, tc, "writer")
	ctx := context.Background()

	base := time.Now().UTC()
	for i, p := range []struct {
		title string
		tags  []string
	}{
		{"Gin tips", []string{"go", "web"}},
		{"Gorm tricks", []string{"go", "db"}},
		{"Baking bread", []string{"food"}},
	} {
		post := &posts.Post{
			ID:              uuid.NewString(),
			AuthorID:        author.ID,
			Title:           p.title,
			Body:            "body",
			Tags:            p.tags,
			DateTimeCreated: base.Add(time.Duration(i) * time.Minute),
			DateTimeUpdated: base,
		}
		require.NoError(t, tc.PostRepo.Create(ctx, post))
	}

	q := posts.NewPostQuery()
	q.Tag = "go"
	list, err := tc.PostRepo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Gorm tricks", list[0].Title, "newest first by default")

	q = posts.NewPostQuery()
	q.Search = "bread"
	list, err = tc.PostRepo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"food"}, list[0].Tags)

	q = posts.NewPostQuery()
	q.Limit = 1
	q.Offset = 2
	list, err = tc.PostRepo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gin tips", list[0].Title)
}

func TestPostSqliteRepository_DeleteMissing(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	err := tc.PostRepo.DeleteByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostSqliteRepository_UpdateAfterDelete(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	author := createTestUser(t, tc, "writer")
	ctx := context.Background()
	now := time.Now().UTC()
	post := &posts.Post{
		ID:              uuid.NewString(),
		AuthorID:        author.ID,
		Title:           "Gin tips",
		Body:            "body",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	require.NoError(t, tc.PostRepo.Create(ctx, post))
	require.NoError(t, tc.PostRepo.DeleteByID(ctx, post.ID))

	post.Body = "edited"
	assert.ErrorIs(t, tc.PostRepo.UpdateByID(ctx, post), apperr.ErrNotFound)

	_, err := tc.PostRepo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestChatSqliteRepository_DirectChatUniqueness(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	a := createTestUser(t, tc, "alice")
	b := createTestUser(t, tc, "bob")

	newDirect := func(creator, other string) *chats.Chat {
		now := time.Now().UTC()
		id := uuid.NewString()
		return &chats.Chat{
			ID:              id,
			IsDirect:        true,
			CreatedBy:       creator,
			DateTimeCreated: now,
			Members: []*chats.ChatMember{
				{ChatID: id, UserID: creator, DateTimeJoined: now},
				{ChatID: id, UserID: other, DateTimeJoined: now},
			},
		}
	}

	first := newDirect(a.ID, b.ID)
	require.NoError(t, tc.ChatRepo.Create(ctx, first))

	err := tc.ChatRepo.Create(ctx, newDirect(b.ID, a.ID))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	found, err := tc.ChatRepo.FindDirect(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Len(t, found.Members, 2)

	list, err := tc.ChatRepo.ListByMember(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChatSqliteRepository_Membership(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	a := createTestUser(t, tc, "alice")
	b := createTestUser(t, tc, "bob")

	now := time.Now().UTC()
	chat := &chats.Chat{
		ID:              uuid.NewString(),
		Name:            "team",
		CreatedBy:       a.ID,
		DateTimeCreated: now,
	}
	chat.Members = []*chats.ChatMember{{ChatID: chat.ID, UserID: a.ID, DateTimeJoined: now}}
	require.NoError(t, tc.ChatRepo.Create(ctx, chat))

	require.NoError(t, tc.ChatRepo.AddMember(ctx, &chats.ChatMember{ChatID: chat.ID, UserID: b.ID, DateTimeJoined: now}))
	err := tc.ChatRepo.AddMember(ctx, &chats.ChatMember{ChatID: chat.ID, UserID: b.ID, DateTimeJoined: now})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	ok, err := tc.ChatRepo.IsMember(ctx, chat.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, tc.ChatRepo.RemoveMember(ctx, chat.ID, b.ID))
	ok, err = tc.ChatRepo.IsMember(ctx, chat.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, tc.ChatRepo.RemoveMember(ctx, chat.ID, b.ID), apperr.ErrNotFound)
}

func TestMessageSqliteRepository_CursorPaging(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	chatID := uuid.NewString()
	sender := uuid.NewString()

	base := time.Now().UTC().Add(-time.Hour)
	var created []*chats.Message
	for i := 0; i < 5; i++ {
		m := &chats.Message{
			ID:              uuid.NewString(),
			ChatID:          chatID,
			SenderID:        sender,
			Body:            "message",
			DateTimeCreated: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, tc.MessageRepo.Create(ctx, m))
		created = append(created, m)
	}

	page, err := tc.MessageRepo.List(ctx, chatID, &chats.MessageQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, created[4].ID, page[0].ID)
	assert.Equal(t, created[3].ID, page[1].ID)

	before := page[1].DateTimeCreated
	page, err = tc.MessageRepo.List(ctx, chatID, &chats.MessageQuery{Before: &before, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, created[2].ID, page[0].ID)
	assert.Equal(t, created[0].ID, page[2].ID)
}
