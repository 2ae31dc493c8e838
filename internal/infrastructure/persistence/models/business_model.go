package models

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/businesses"
)

// BusinessModel is the GORM database model for businesses
type BusinessModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	OwnerID         string    `gorm:"not null;index;type:varchar(36)"`
	Name            string    `gorm:"not null;type:varchar(120)"`
	Slug            string    `gorm:"not null;uniqueIndex;type:varchar(140)"`
	Description     string    `gorm:"type:text"`
	Category        string    `gorm:"index;type:varchar(50)"`
	Website         string    `gorm:"type:varchar(2048)"`
	Verified        bool      `gorm:"not null;default:false"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts GORM model to domain entity
func (m *BusinessModel) ToDomain() *businesses.Business {
	return &businesses.Business{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		Slug:            m.Slug,
		Description:     m.Description,
		Category:        m.Category,
		Website:         m.Website,
		Verified:        m.Verified,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BusinessModel) FromDomain(b *businesses.Business) {
	m.ID = b.ID
	m.OwnerID = b.OwnerID
	m.Name = b.Name
	m.Slug = b.Slug
	m.Description = b.Description
	m.Category = b.Category
	m.Website = b.Website
	m.Verified = b.Verified
	m.DateTimeCreated = b.DateTimeCreated
	m.DateTimeUpdated = b.DateTimeUpdated
}

// ActivityModel is the GORM database model for recorded domain events
type ActivityModel struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)"`
	EventID          string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	Type             string    `gorm:"not null;index;type:varchar(100)"`
	Source           string    `gorm:"not null;index;type:varchar(50)"`
	SubjectID        string    `gorm:"type:varchar(64)"`
	ActorID          string    `gorm:"index;type:varchar(64)"`
	Payload          string    `gorm:"type:text"`
	DateTimeOccurred time.Time `gorm:"not null;index"`
	DateTimeRecorded time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts GORM model to domain entity
func (m *ActivityModel) ToDomain() *businesses.Activity {
	return &businesses.Activity{
		ID:               m.ID,
		EventID:          m.EventID,
		Type:             m.Type,
		Source:           m.Source,
		SubjectID:        m.SubjectID,
		ActorID:          m.ActorID,
		Payload:          m.Payload,
		DateTimeOccurred: m.DateTimeOccurred,
		DateTimeRecorded: m.DateTimeRecorded,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ActivityModel) FromDomain(a *businesses.Activity) {
	m.ID = a.ID
	m.EventID = a.EventID
	m.Type = a.Type
	m.Source = a.Source
	m.SubjectID = a.SubjectID
	m.ActorID = a.ActorID
	m.Payload = a.Payload
	m.DateTimeOccurred = a.DateTimeOccurred
	m.DateTimeRecorded = a.DateTimeRecorded
}
