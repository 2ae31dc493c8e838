//go:build unit
// +build unit

package users

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	now := time.Now().UTC()
	return &User{
		ID:              uuid.NewString(),
		Email:           "ada@example.com",
		Username:        "ada_l",
		PasswordHash:    "$2a$10$hash",
		Role:            auth.RoleMember,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{"valid", func(u *User) {}, false},
		{"bad email", func(u *User) { u.Email = "nope" }, true},
		{"short username", func(u *User) { u.Username = "ab" }, true},
		{"username with dash", func(u *User) { u.Username = "ada-l" }, true},
		{"unknown role", func(u *User) { u.Role = "owner" }, true},
		{"non uuid id", func(u *User) { u.ID = "123" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileUpdateApply(t *testing.T) {
	name := "Ada"
	website := "https://ada.dev"
	p := &Profile{UserID: uuid.NewString(), Bio: "kept", DateTimeUpdated: time.Now()}

	update := &ProfileUpdate{DisplayName: &name, Website: &website}
	require.NoError(t, update.Validate())
	update.Apply(p)

	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, "https://ada.dev", p.Website)
	assert.Equal(t, "kept", p.Bio)
}

func TestProfileUpdateValidation(t *testing.T) {
	bad := "not a url"
	assert.Error(t, (&ProfileUpdate{AvatarURL: &bad}).Validate())

	empty := ""
	assert.NoError(t, (&ProfileUpdate{Website: &empty}).Validate())
}

func TestRegisterInputValidation(t *testing.T) {
	assert.NoError(t, (&RegisterInput{Email: "a@b.io", Username: "abc", Password: "12345678"}).Validate())
	assert.Error(t, (&RegisterInput{Email: "a@b.io", Username: "abc", Password: "short"}).Validate())
}

func TestUserQueryValidate(t *testing.T) {
	q := NewUserQuery()
	q.SortBy = "username"
	require.NoError(t, q.Validate())

	q = NewUserQuery()
	q.SortBy = "password_hash"
	assert.ErrorIs(t, q.Validate(), apperr.ErrInvalidInput)
}
