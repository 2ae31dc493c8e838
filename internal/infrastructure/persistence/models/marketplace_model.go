package models

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/marketplace"
)

// ListingModel is the GORM database model for marketplace listings
type ListingModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	SellerID        string    `gorm:"not null;index;type:varchar(36)"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Description     string    `gorm:"type:text"`
	PriceCents      int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;type:varchar(3)"`
	Category        string    `gorm:"index;type:varchar(50)"`
	Status          string    `gorm:"not null;index;type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts GORM model to domain entity
func (m *ListingModel) ToDomain() *marketplace.Listing {
	return &marketplace.Listing{
		ID:              m.ID,
		SellerID:        m.SellerID,
		Title:           m.Title,
		Description:     m.Description,
		PriceCents:      m.PriceCents,
		Currency:        m.Currency,
		Category:        m.Category,
		Status:          m.Status,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ListingModel) FromDomain(l *marketplace.Listing) {
	m.ID = l.ID
	m.SellerID = l.SellerID
	m.Title = l.Title
	m.Description = l.Description
	m.PriceCents = l.PriceCents
	m.Currency = l.Currency
	m.Category = l.Category
	m.Status = l.Status
	m.DateTimeCreated = l.DateTimeCreated
	m.DateTimeUpdated = l.DateTimeUpdated
}

// OrderModel is the GORM database model for marketplace orders
type OrderModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	ListingID       string    `gorm:"not null;index;type:varchar(36)"`
	BuyerID         string    `gorm:"not null;index;type:varchar(36)"`
	SellerID        string    `gorm:"not null;index;type:varchar(36)"`
	AmountCents     int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;type:varchar(3)"`
	Status          string    `gorm:"not null;type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts GORM model to domain entity
func (m *OrderModel) ToDomain() *marketplace.Order {
	return &marketplace.Order{
		ID:              m.ID,
		ListingID:       m.ListingID,
		BuyerID:         m.BuyerID,
		SellerID:        m.SellerID,
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		Status:          m.Status,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OrderModel) FromDomain(o *marketplace.Order) {
	m.ID = o.ID
	m.ListingID = o.ListingID
	m.BuyerID = o.BuyerID
	m.SellerID = o.SellerID
	m.AmountCents = o.AmountCents
	m.Currency = o.Currency
	m.Status = o.Status
	m.DateTimeCreated = o.DateTimeCreated
	m.DateTimeUpdated = o.DateTimeUpdated
}
