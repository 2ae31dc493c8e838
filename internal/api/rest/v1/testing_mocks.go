//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/pkg/auth"

	"github.com/stretchr/testify/mock"
)

// result unpacks a (T, error) pair from a mock call.
func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input *users.RegisterInput) (*users.AuthResult, error) {
	return result[*users.AuthResult](m.Called(ctx, input))
}

func (m *MockAuthService) Login(ctx context.Context, input *users.LoginInput) (*users.AuthResult, error) {
	return result[*users.AuthResult](m.Called(ctx, input))
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, userID string) (*users.Account, error) {
	return result[*users.Account](m.Called(ctx, userID))
}

func (m *MockUserService) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	return result[[]*users.User](m.Called(ctx, query))
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*users.Profile, error) {
	return result[*users.Profile](m.Called(ctx, userID))
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update *users.ProfileUpdate) (*users.Profile, error) {
	return result[*users.Profile](m.Called(ctx, userID, update))
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, caller auth.Principal, input *posts.PostInput) (*posts.Post, error) {
	return result[*posts.Post](m.Called(ctx, caller, input))
}

func (m *MockPostService) List(ctx context.Context, query *posts.PostQuery) ([]*posts.Post, error) {
	return result[[]*posts.Post](m.Called(ctx, query))
}

func (m *MockPostService) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	return result[*posts.Post](m.Called(ctx, postID))
}

func (m *MockPostService) Update(ctx context.Context, caller auth.Principal, postID string, update *posts.PostUpdate) (*posts.Post, error) {
	return result[*posts.Post](m.Called(ctx, caller, postID, update))
}

func (m *MockPostService) DeleteByID(ctx context.Context, caller auth.Principal, postID string) error {
	return m.Called(ctx, caller, postID).Error(0)
}

// MockChatService is a mock implementation of ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Create(ctx context.Context, caller auth.Principal, input *chats.CreateChatInput) (*chats.Chat, bool, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*chats.Chat), args.Bool(1), args.Error(2)
}

func (m *MockChatService) ListForUser(ctx context.Context, userID string) ([]*chats.Chat, error) {
	return result[[]*chats.Chat](m.Called(ctx, userID))
}

func (m *MockChatService) Get(ctx context.Context, caller auth.Principal, chatID string) (*chats.Chat, error) {
	return result[*chats.Chat](m.Called(ctx, caller, chatID))
}

func (m *MockChatService) AddMember(ctx context.Context, caller auth.Principal, chatID, userID string) (*chats.ChatMember, error) {
	return result[*chats.ChatMember](m.Called(ctx, caller, chatID, userID))
}

func (m *MockChatService) Leave(ctx context.Context, caller auth.Principal, chatID string) error {
	return m.Called(ctx, caller, chatID).Error(0)
}

func (m *MockChatService) EnsureMember(ctx context.Context, chatID, userID string) error {
	return m.Called(ctx, chatID, userID).Error(0)
}

// MockMessageService is a mock implementation of MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, caller auth.Principal, chatID, body string) (*chats.Message, error) {
	return result[*chats.Message](m.Called(ctx, caller, chatID, body))
}

func (m *MockMessageService) List(ctx context.Context, caller auth.Principal, chatID string, query *chats.MessageQuery) ([]*chats.Message, error) {
	return result[[]*chats.Message](m.Called(ctx, caller, chatID, query))
}

func (m *MockMessageService) Edit(ctx context.Context, caller auth.Principal, chatID, messageID, body string) (*chats.Message, error) {
	return result[*chats.Message](m.Called(ctx, caller, chatID, messageID, body))
}

func (m *MockMessageService) Delete(ctx context.Context, caller auth.Principal, chatID, messageID string) error {
	return m.Called(ctx, caller, chatID, messageID).Error(0)
}

// MockListingService is a mock implementation of ListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, caller auth.Principal, input *marketplace.ListingInput) (*marketplace.Listing, error) {
	return result[*marketplace.Listing](m.Called(ctx, caller, input))
}

func (m *MockListingService) List(ctx context.Context, query *marketplace.ListingQuery) ([]*marketplace.Listing, error) {
	return result[[]*marketplace.Listing](m.Called(ctx, query))
}

func (m *MockListingService) GetByID(ctx context.Context, listingID string) (*marketplace.Listing, error) {
	return result[*marketplace.Listing](m.Called(ctx, listingID))
}

func (m *MockListingService) Update(ctx context.Context, caller auth.Principal, listingID string, update *marketplace.ListingUpdate) (*marketplace.Listing, error) {
	return result[*marketplace.Listing](m.Called(ctx, caller, listingID, update))
}

func (m *MockListingService) Archive(ctx context.Context, caller auth.Principal, listingID string) error {
	return m.Called(ctx, caller, listingID).Error(0)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, caller auth.Principal, listingID string) (*marketplace.Order, error) {
	return result[*marketplace.Order](m.Called(ctx, caller, listingID))
}

func (m *MockOrderService) List(ctx context.Context, query *marketplace.OrderQuery) ([]*marketplace.Order, error) {
	return result[[]*marketplace.Order](m.Called(ctx, query))
}

func (m *MockOrderService) GetByID(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	return result[*marketplace.Order](m.Called(ctx, caller, orderID))
}

func (m *MockOrderService) Complete(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	return result[*marketplace.Order](m.Called(ctx, caller, orderID))
}

func (m *MockOrderService) Cancel(ctx context.Context, caller auth.Principal, orderID string) (*marketplace.Order, error) {
	return result[*marketplace.Order](m.Called(ctx, caller, orderID))
}

// MockCourseService is a mock implementation of CourseService
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) Create(ctx context.Context, caller auth.Principal, input *academy.CourseInput) (*academy.Course, error) {
	return result[*academy.Course](m.Called(ctx, caller, input))
}

func (m *MockCourseService) List(ctx context.Context, viewer *auth.Principal, query *academy.CourseQuery) ([]*academy.Course, error) {
	return result[[]*academy.Course](m.Called(ctx, viewer, query))
}

func (m *MockCourseService) Get(ctx context.Context, viewer *auth.Principal, courseID string) (*academy.Course, error) {
	return result[*academy.Course](m.Called(ctx, viewer, courseID))
}

func (m *MockCourseService) Update(ctx context.Context, caller auth.Principal, courseID string, update *academy.CourseUpdate) (*academy.Course, error) {
	return result[*academy.Course](m.Called(ctx, caller, courseID, update))
}

func (m *MockCourseService) DeleteByID(ctx context.Context, caller auth.Principal, courseID string) error {
	return m.Called(ctx, caller, courseID).Error(0)
}

func (m *MockCourseService) Publish(ctx context.Context, caller auth.Principal, courseID string) (*academy.Course, error) {
	return result[*academy.Course](m.Called(ctx, caller, courseID))
}

func (m *MockCourseService) AddLesson(ctx context.Context, caller auth.Principal, courseID string, input *academy.LessonInput) (*academy.Lesson, error) {
	return result[*academy.Lesson](m.Called(ctx, caller, courseID, input))
}

func (m *MockCourseService) ListLessons(ctx context.Context, viewer *auth.Principal, courseID string) ([]*academy.Lesson, error) {
	return result[[]*academy.Lesson](m.Called(ctx, viewer, courseID))
}

// MockEnrollmentService is a mock implementation of EnrollmentService
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) Enroll(ctx context.Context, caller auth.Principal, courseID string) (*academy.Enrollment, error) {
	return result[*academy.Enrollment](m.Called(ctx, caller, courseID))
}

func (m *MockEnrollmentService) ListForUser(ctx context.Context, userID string) ([]*academy.Enrollment, error) {
	return result[[]*academy.Enrollment](m.Called(ctx, userID))
}

func (m *MockEnrollmentService) UpdateProgress(ctx context.Context, caller auth.Principal, enrollmentID string, progress int) (*academy.Enrollment, error) {
	return result[*academy.Enrollment](m.Called(ctx, caller, enrollmentID, progress))
}

// MockBusinessService is a mock implementation of BusinessService
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) Create(ctx context.Context, caller auth.Principal, input *businesses.BusinessInput) (*businesses.Business, error) {
	return result[*businesses.Business](m.Called(ctx, caller, input))
}

func (m *MockBusinessService) List(ctx context.Context, query *businesses.BusinessQuery) ([]*businesses.Business, error) {
	return result[[]*businesses.Business](m.Called(ctx, query))
}

func (m *MockBusinessService) Get(ctx context.Context, idOrSlug string) (*businesses.Business, error) {
	return result[*businesses.Business](m.Called(ctx, idOrSlug))
}

func (m *MockBusinessService) Update(ctx context.Context, caller auth.Principal, businessID string, update *businesses.BusinessUpdate) (*businesses.Business, error) {
	return result[*businesses.Business](m.Called(ctx, caller, businessID, update))
}

func (m *MockBusinessService) DeleteByID(ctx context.Context, caller auth.Principal, businessID string) error {
	return m.Called(ctx, caller, businessID).Error(0)
}

func (m *MockBusinessService) Verify(ctx context.Context, caller auth.Principal, businessID string) (*businesses.Business, error) {
	return result[*businesses.Business](m.Called(ctx, caller, businessID))
}

// MockActivityService is a mock implementation of ActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, event *events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockActivityService) List(ctx context.Context, query *businesses.ActivityQuery) ([]*businesses.Activity, error) {
	return result[[]*businesses.Activity](m.Called(ctx, query))
}

func (m *MockActivityService) Stats(ctx context.Context) ([]*businesses.ActivityStat, error) {
	return result[[]*businesses.ActivityStat](m.Called(ctx))
}
