package v1

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ProfileResponse struct {
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	Location        string    `json:"location"`
	Website         string    `json:"website"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

// AccountResponse pairs a user with its profile.
type AccountResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
}

type PostRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type PostUpdateRequest struct {
	Title *string   `json:"title"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags"`
}

type PostResponse struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"author_id"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Tags            []string  `json:"tags"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

type ChatRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	IsDirect  bool     `json:"is_direct"`
}

type ChatMemberRequest struct {
	UserID string `json:"user_id"`
}

type ChatMemberResponse struct {
	UserID         string    `json:"user_id"`
	DateTimeJoined time.Time `json:"date_time_joined"`
}

type ChatResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	IsDirect        bool                 `json:"is_direct"`
	CreatedBy       string               `json:"created_by"`
	DateTimeCreated time.Time            `json:"date_time_created"`
	Members         []ChatMemberResponse `json:"members"`
}

// MessageRequest is the body for sending and editing messages.
type MessageRequest struct {
	Body string `json:"body"`
}

type ListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
}

type ListingUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Currency    *string `json:"currency"`
	Category    *string `json:"category"`
}

type ListingResponse struct {
	ID              string    `json:"id"`
	SellerID        string    `json:"seller_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PriceCents      int64     `json:"price_cents"`
	Currency        string    `json:"currency"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

type OrderRequest struct {
	ListingID string `json:"listing_id"`
}

type OrderResponse struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listing_id"`
	BuyerID         string    `json:"buyer_id"`
	SellerID        string    `json:"seller_id"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Level       *string `json:"level"`
}

type CourseResponse struct {
	ID              string    `json:"id"`
	InstructorID    string    `json:"instructor_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Level           string    `json:"level"`
	Published       bool      `json:"published"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

type LessonRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

type LessonResponse struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Position        int       `json:"position"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// ProgressRequest uses a pointer so a missing field is told apart from 0.
type ProgressRequest struct {
	Progress *int `json:"progress"`
}

type EnrollmentResponse struct {
	ID                string     `json:"id"`
	CourseID          string     `json:"course_id"`
	UserID            string     `json:"user_id"`
	Progress          int        `json:"progress"`
	DateTimeCreated   time.Time  `json:"date_time_created"`
	DateTimeCompleted *time.Time `json:"date_time_completed,omitempty"`
}

type BusinessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Website     string `json:"website"`
}

type BusinessUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Website     *string `json:"website"`
}

type BusinessResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Website         string    `json:"website"`
	Verified        bool      `json:"verified"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

type ActivityResponse struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	Type             string    `json:"type"`
	Source           string    `json:"source"`
	SubjectID        string    `json:"subject_id"`
	ActorID          string    `json:"actor_id,omitempty"`
	Payload          string    `json:"payload,omitempty"`
	DateTimeOccurred time.Time `json:"date_time_occurred"`
	DateTimeRecorded time.Time `json:"date_time_recorded"`
}

type ActivityStatResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

func toUserResponse(u *users.User, withEmail bool) UserResponse {
	res := UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Role:            u.Role,
		DateTimeCreated: u.DateTimeCreated,
	}
	if withEmail {
		res.Email = u.Email
	}
	return res
}

func toProfileResponse(p *users.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		AvatarURL:       p.AvatarURL,
		Location:        p.Location,
		Website:         p.Website,
		DateTimeUpdated: p.DateTimeUpdated,
	}
}

func toAuthResponse(res *users.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User, true),
	}
}

func toPostResponse(p *posts.Post) PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:              p.ID,
		AuthorID:        p.AuthorID,
		Title:           p.Title,
		Body:            p.Body,
		Tags:            tags,
		DateTimeCreated: p.DateTimeCreated,
		DateTimeUpdated: p.DateTimeUpdated,
	}
}

func toChatResponse(c *chats.Chat) ChatResponse {
	res := ChatResponse{
		ID:              c.ID,
		Name:            c.Name,
		IsDirect:        c.IsDirect,
		CreatedBy:       c.CreatedBy,
		DateTimeCreated: c.DateTimeCreated,
		Members:         make([]ChatMemberResponse, 0, len(c.Members)),
	}
	for _, m := range c.Members {
		res.Members = append(res.Members, ChatMemberResponse{UserID: m.UserID, DateTimeJoined: m.DateTimeJoined})
	}
	return res
}

func toListingResponse(l *marketplace.Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		SellerID:        l.SellerID,
		Title:           l.Title,
		Description:     l.Description,
		PriceCents:      l.PriceCents,
		Currency:        l.Currency,
		Category:        l.Category,
		Status:          l.Status,
		DateTimeCreated: l.DateTimeCreated,
		DateTimeUpdated: l.DateTimeUpdated,
	}
}

func toOrderResponse(o *marketplace.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		ListingID:       o.ListingID,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		AmountCents:     o.AmountCents,
		Currency:        o.Currency,
		Status:          o.Status,
		DateTimeCreated: o.DateTimeCreated,
		DateTimeUpdated: o.DateTimeUpdated,
	}
}

func toCourseResponse(c *academy.Course) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		InstructorID:    c.InstructorID,
		Title:           c.Title,
		Description:     c.Description,
		Level:           c.Level,
		Published:       c.Published,
		DateTimeCreated: c.DateTimeCreated,
		DateTimeUpdated: c.DateTimeUpdated,
	}
}

func toLessonResponse(l *academy.Lesson) LessonResponse {
	return LessonResponse{
		ID:              l.ID,
		CourseID:        l.CourseID,
		Title:           l.Title,
		Content:         l.Content,
		Position:        l.Position,
		DateTimeCreated: l.DateTimeCreated,
	}
}

func toEnrollmentResponse(e *academy.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                e.ID,
		CourseID:          e.CourseID,
		UserID:            e.UserID,
		Progress:          e.Progress,
		DateTimeCreated:   e.DateTimeCreated,
		DateTimeCompleted: e.DateTimeCompleted,
	}
}

func toBusinessResponse(b *businesses.Business) BusinessResponse {
	return BusinessResponse{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Name:            b.Name,
		Slug:            b.Slug,
		Description:     b.Description,
		Category:        b.Category,
		Website:         b.Website,
		Verified:        b.Verified,
		DateTimeCreated: b.DateTimeCreated,
		DateTimeUpdated: b.DateTimeUpdated,
	}
}

func toActivityResponse(a *businesses.Activity) ActivityResponse {
	return ActivityResponse{
		ID:               a.ID,
		EventID:          a.EventID,
		Type:             a.Type,
		Source:           a.Source,
		SubjectID:        a.SubjectID,
		ActorID:          a.ActorID,
		Payload:          a.Payload,
		DateTimeOccurred: a.DateTimeOccurred,
		DateTimeRecorded: a.DateTimeRecorded,
	}
}

// mapList converts a slice and never returns nil, so empty lists encode as [].
func mapList[T any, R any](items []T, convert func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
