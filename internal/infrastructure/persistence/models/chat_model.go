package models

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/chats"
)

// ChatModel is the GORM database model for chats.
// DirectKey is set only for direct chats; the unique index prevents duplicate pairs.
type ChatModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Name            string    `gorm:"type:varchar(100)"`
	IsDirect        bool      `gorm:"not null;default:false"`
	DirectKey       *string   `gorm:"uniqueIndex;type:varchar(80)"`
	CreatedBy       string    `gorm:"not null;type:varchar(36)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ChatModel) TableName() string {
	return "chats"
}

// ToDomain converts GORM model to domain entity
func (m *ChatModel) ToDomain() *chats.Chat {
	return &chats.Chat{
		ID:              m.ID,
		Name:            m.Name,
		IsDirect:        m.IsDirect,
		CreatedBy:       m.CreatedBy,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ChatModel) FromDomain(c *chats.Chat) {
	m.ID = c.ID
	m.Name = c.Name
	m.IsDirect = c.IsDirect
	m.CreatedBy = c.CreatedBy
	m.DateTimeCreated = c.DateTimeCreated
	m.DirectKey = nil
	if c.IsDirect && len(c.Members) == 2 {
		key := chats.DirectKey(c.Members[0].UserID, c.Members[1].UserID)
		m.DirectKey = &key
	}
}

// ChatMemberModel is the GORM database model for chat membership
type ChatMemberModel struct {
	ChatID         string    `gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `gorm:"primaryKey;index;type:varchar(36)"`
	DateTimeJoined time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ChatMemberModel) TableName() string {
	return "chat_members"
}

// ToDomain converts GORM model to domain entity
func (m *ChatMemberModel) ToDomain() *chats.ChatMember {
	return &chats.ChatMember{
		ChatID:         m.ChatID,
		UserID:         m.UserID,
		DateTimeJoined: m.DateTimeJoined,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ChatMemberModel) FromDomain(cm *chats.ChatMember) {
	m.ChatID = cm.ChatID
	m.UserID = cm.UserID
	m.DateTimeJoined = cm.DateTimeJoined
}

// MessageModel is the GORM database model for chat messages
type MessageModel struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)"`
	ChatID          string     `gorm:"not null;index:idx_messages_chat_created,priority:1;type:varchar(36)"`
	SenderID        string     `gorm:"not null;type:varchar(36)"`
	Body            string     `gorm:"not null;type:text"`
	DateTimeCreated time.Time  `gorm:"not null;index:idx_messages_chat_created,priority:2"`
	DateTimeEdited  *time.Time
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity
func (m *MessageModel) ToDomain() *chats.Message {
	return &chats.Message{
		ID:              m.ID,
		ChatID:          m.ChatID,
		SenderID:        m.SenderID,
		Body:            m.Body,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeEdited:  m.DateTimeEdited,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *chats.Message) {
	m.ID = msg.ID
	m.ChatID = msg.ChatID
	m.SenderID = msg.SenderID
	m.Body = msg.Body
	m.DateTimeCreated = msg.DateTimeCreated
	m.DateTimeEdited = msg.DateTimeEdited
}
