package users

import (
	"context"
)

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	// Register creates a user with an empty profile and returns a token for it.
	// Duplicate email or username yields apperr.ErrConflict.
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)

	// Login verifies credentials. Unknown email and wrong password fail identically.
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)
}

// UserService reads users and manages profiles.
type UserService interface {
	// GetByID returns the user and profile.
	GetByID(ctx context.Context, userID string) (*Account, error)

	// List searches users by username or email substring.
	List(ctx context.Context, query *UserQuery) ([]*User, error)

	// GetProfile returns the profile of a user.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// UpdateProfile applies a partial update to the caller's profile.
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*Profile, error)
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	// Create stores the user and its profile in one transaction.
	Create(ctx context.Context, user *User, profile *Profile) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users that exist among userIDs.
	GetByIDs(ctx context.Context, userIDs []string) ([]*User, error)
	List(ctx context.Context, query *UserQuery) ([]*User, error)
}

// ProfileRepository defines the interface for Profile-related operations
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}
