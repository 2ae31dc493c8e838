package users

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// User entity
type User struct {
	ID              string    `validate:"required,uuid4"`
	Email           string    `validate:"required,email,max=254"`
	Username        string    `validate:"required,username"`
	PasswordHash    string    `validate:"required"`
	Role            string    `validate:"required,oneof=member moderator admin"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.ValidateStruct(u)
}

// Principal returns the identity carried in tokens issued for u.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
	}
}

// Profile entity, one per user
type Profile struct {
	UserID          string    `validate:"required,uuid4"`
	DisplayName     string    `validate:"max=64"`
	Bio             string    `validate:"max=500"`
	AvatarURL       string    `validate:"omitempty,url"`
	Location        string    `validate:"max=64"`
	Website         string    `validate:"omitempty,url"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	return validators.ValidateStruct(p)
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName *string `validate:"omitempty,max=64"`
	Bio         *string `validate:"omitempty,max=500"`
	AvatarURL   *string `validate:"omitempty,url"`
	Location    *string `validate:"omitempty,max=64"`
	Website     *string `validate:"omitempty,url"`
}

// Validate for validating ProfileUpdate struct
func (u *ProfileUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Apply copies the set fields onto p.
func (u *ProfileUpdate) Apply(p *Profile) {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
}

// Account is a user together with its profile.
type Account struct {
	User    *User
	Profile *Profile
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string `validate:"required,email,max=254"`
	Username string `validate:"required,username"`
	Password string `validate:"required,min=8,max=72"`
}

// Validate for validating RegisterInput struct
func (in *RegisterInput) Validate() error {
	return validators.ValidateStruct(in)
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Validate for validating LoginInput struct
func (in *LoginInput) Validate() error {
	return validators.ValidateStruct(in)
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// UserSortColumns lists the columns users can be sorted by.
var UserSortColumns = []string{"date_time_created", "username", "email"}

// UserQuery filters the user search.
type UserQuery struct {
	query.ListQuery
	Search string `validate:"max=100"`
}

// NewUserQuery returns a UserQuery with default paging.
func NewUserQuery() *UserQuery {
	return &UserQuery{ListQuery: query.New()}
}

// Validate checks the filter and normalizes paging.
func (q *UserQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	return q.Normalize(UserSortColumns...)
}
