package models

import (
	"strings"
	"time"

	"github.com/hubverse/hub-services/internal/domain/posts"
)

// PostModel is the GORM database model for posts.
// Tags are stored as ",a,b," so a single tag matches with LIKE '%,tag,%'.
type PostModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	AuthorID        string    `gorm:"not null;index;type:varchar(36)"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Body            string    `gorm:"not null;type:text"`
	Tags            string    `gorm:"not null;default:'';type:varchar(400)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts GORM model to domain entity
func (m *PostModel) ToDomain() *posts.Post {
	return &posts.Post{
		ID:              m.ID,
		AuthorID:        m.AuthorID,
		Title:           m.Title,
		Body:            m.Body,
		Tags:            DecodeTags(m.Tags),
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PostModel) FromDomain(p *posts.Post) {
	m.ID = p.ID
	m.AuthorID = p.AuthorID
	m.Title = p.Title
	m.Body = p.Body
	m.Tags = EncodeTags(p.Tags)
	m.DateTimeCreated = p.DateTimeCreated
	m.DateTimeUpdated = p.DateTimeUpdated
}

// EncodeTags joins tags into the delimited column format.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// DecodeTags splits the delimited column format.
func DecodeTags(column string) []string {
	trimmed := strings.Trim(column, ",")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, ",")
}
