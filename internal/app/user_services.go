package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
	"github.com/hubverse/hub-services/internal/pkg/strutil"
)

const invalidCredentials = "invalid email or password"

// authService implements the AuthService interface
type authService struct {
	userRepo  users.UserRepository
	issuer    auth.TokenIssuer
	publisher events.Publisher
	logger    logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo users.UserRepository,
	issuer auth.TokenIssuer,
	publisher events.Publisher,
	logger logger.Logger,
) (users.AuthService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &authService{
		userRepo:  userRepo,
		issuer:    issuer,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Register creates a member account with an empty profile and signs a token for it.
func (s *authService) Register(ctx context.Context, input *users.RegisterInput) (*users.AuthResult, error) {
	input.Email = strutil.NormalizeEmail(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &users.User{
		ID:              uuid.NewString(),
		Email:           input.Email,
		Username:        input.Username,
		PasswordHash:    hash,
		Role:            auth.RoleMember,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	profile := &users.Profile{UserID: user.ID, DateTimeUpdated: now}

	if err := s.userRepo.Create(ctx, user, profile); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email or username already registered")
		}
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.UserRegistered, user.ID, user.ID, map[string]interface{}{
		"username": user.Username,
	}))

	return s.authResult(user)
}

// Login exchanges valid credentials for a token.
func (s *authService) Login(ctx context.Context, input *users.LoginInput) (*users.AuthResult, error) {
	input.Email = strutil.NormalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized(invalidCredentials)
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	return s.authResult(user)
}

func (s *authService) authResult(user *users.User) (*users.AuthResult, error) {
	token, expiresAt, err := s.issuer.Issue(user.Principal())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &users.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// userService implements the UserService interface
type userService struct {
	userRepo    users.UserRepository
	profileRepo users.ProfileRepository
	logger      logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo users.UserRepository, profileRepo users.ProfileRepository, logger logger.Logger) (users.UserService, error) {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*users.Account, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &users.Account{User: user, Profile: profile}, nil
}

func (s *userService) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, query)
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*users.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update *users.ProfileUpdate) (*users.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(profile)
	profile.DateTimeUpdated = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
