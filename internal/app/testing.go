//go:build integration
// +build integration

package app

import (
	"context"
	"sync"
	"testing"

	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// Types returns the routing keys published so far.
func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

// recordingBroadcaster keeps stream events per chat.
type recordingBroadcaster struct {
	mu     sync.Mutex
	frames map[string][]chats.StreamEvent
}

func (b *recordingBroadcaster) Broadcast(chatID string, event chats.StreamEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frames == nil {
		b.frames = map[string][]chats.StreamEvent{}
	}
	b.frames[chatID] = append(b.frames[chatID], event)
}

func (b *recordingBroadcaster) For(chatID string) []chats.StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]chats.StreamEvent(nil), b.frames[chatID]...)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService       users.AuthService
	UserService       users.UserService
	PostService       posts.PostService
	ChatService       chats.ChatService
	MessageService    chats.MessageService
	ListingService    marketplace.ListingService
	OrderService      marketplace.OrderService
	CourseService     academy.CourseService
	EnrollmentService academy.EnrollmentService
	BusinessService   businesses.BusinessService
	ActivityService   businesses.ActivityService

	Tokens      *auth.TokenManager
	Publisher   *recordingPublisher
	Broadcaster *recordingBroadcaster
	DBContext   *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	tokens := testutil.NewTokenManager(t)
	publisher := &recordingPublisher{}
	broadcaster := &recordingBroadcaster{}

	authService, err := NewAuthService(dbContext.UserRepo, tokens, publisher, logger)
	require.NoError(t, err, "Failed to create AuthService")

	userService, err := NewUserService(dbContext.UserRepo, dbContext.ProfileRepo, logger)
	require.NoError(t, err, "Failed to create UserService")

	postService, err := NewPostService(dbContext.PostRepo, publisher, logger)
	require.NoError(t, err, "Failed to create PostService")

	chatService, err := NewChatService(dbContext.ChatRepo, dbContext.UserRepo, publisher, logger)
	require.NoError(t, err, "Failed to create ChatService")

	messageService, err := NewMessageService(dbContext.MessageRepo, chatService, broadcaster, logger)
	require.NoError(t, err, "Failed to create MessageService")

	listingService, err := NewListingService(dbContext.ListingRepo, publisher, logger)
	require.NoError(t, err, "Failed to create ListingService")

	orderService, err := NewOrderService(dbContext.OrderRepo, dbContext.ListingRepo, publisher, logger)
	require.NoError(t, err, "Failed to create OrderService")

	courseService, err := NewCourseService(dbContext.CourseRepo, dbContext.LessonRepo, publisher, logger)
	require.NoError(t, err, "Failed to create CourseService")

	enrollmentService, err := NewEnrollmentService(dbContext.EnrollmentRepo, dbContext.CourseRepo, publisher, logger)
	require.NoError(t, err, "Failed to create EnrollmentService")

	businessService, err := NewBusinessService(dbContext.BusinessRepo, publisher, logger)
	require.NoError(t, err, "Failed to create BusinessService")

	activityService, err := NewActivityService(dbContext.ActivityRepo, logger)
	require.NoError(t, err, "Failed to create ActivityService")

	return &TestServices{
		AuthService:       authService,
		UserService:       userService,
		PostService:       postService,
		ChatService:       chatService,
		MessageService:    messageService,
		ListingService:    listingService,
		OrderService:      orderService,
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
		BusinessService:   businessService,
		ActivityService:   activityService,
		Tokens:            tokens,
		Publisher:         publisher,
		Broadcaster:       broadcaster,
		DBContext:         dbContext,
	}
}

// registerUser creates an account and returns its principal.
func registerUser(t *testing.T, services *TestServices, username string) auth.Principal {
	t.Helper()
	res, err := services.AuthService.Register(context.Background(), &users.RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return res.User.Principal()
}
