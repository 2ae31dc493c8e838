package models

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/users"
)

// UserModel is the GORM database model for users
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Email           string    `gorm:"not null;uniqueIndex;type:varchar(254)"`
	Username        string    `gorm:"not null;uniqueIndex;type:varchar(32)"`
	PasswordHash    string    `gorm:"not null;type:varchar(255)"`
	Role            string    `gorm:"not null;type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:              m.ID,
		Email:           m.Email,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		Role:            m.Role,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.DateTimeCreated = u.DateTimeCreated
	m.DateTimeUpdated = u.DateTimeUpdated
}

// ProfileModel is the GORM database model for user profiles
type ProfileModel struct {
	UserID          string    `gorm:"primaryKey;type:varchar(36)"`
	DisplayName     string    `gorm:"type:varchar(64)"`
	Bio             string    `gorm:"type:varchar(500)"`
	AvatarURL       string    `gorm:"type:varchar(2048)"`
	Location        string    `gorm:"type:varchar(64)"`
	Website         string    `gorm:"type:varchar(2048)"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *users.Profile {
	return &users.Profile{
		UserID:          m.UserID,
		DisplayName:     m.DisplayName,
		Bio:             m.Bio,
		AvatarURL:       m.AvatarURL,
		Location:        m.Location,
		Website:         m.Website,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *users.Profile) {
	m.UserID = p.UserID
	m.DisplayName = p.DisplayName
	m.Bio = p.Bio
	m.AvatarURL = p.AvatarURL
	m.Location = p.Location
	m.Website = p.Website
	m.DateTimeUpdated = p.DateTimeUpdated
}
