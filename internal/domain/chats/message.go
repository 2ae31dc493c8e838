package chats

import (
	"time"

	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Message entity. It is pushed to stream subscribers as is, hence the json tags.
type Message struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	ChatID          string     `json:"chat_id" validate:"required,uuid4"`
	SenderID        string     `json:"sender_id" validate:"required,uuid4"`
	Body            string     `json:"body" validate:"required,min=1,max=4000"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	DateTimeEdited  *time.Time `json:"date_time_edited,omitempty"`
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	return validators.ValidateStruct(m)
}

// MessageQuery pages backwards through a chat: newest first, strictly older than Before.
type MessageQuery struct {
	Before *time.Time
	Limit  int `validate:"gte=0,lte=100"`
}

// Validate checks the page size and applies the default.
func (q *MessageQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	if q.Before != nil && q.Before.IsZero() {
		return apperr.Invalid("before must be a valid timestamp")
	}
	if q.Limit == 0 {
		q.Limit = query.DefaultLimit
	}
	return nil
}

// Stream event types pushed to chat subscribers.
const (
	StreamEventMessage        = "message"
	StreamEventMessageEdited  = "message_edited"
	StreamEventMessageDeleted = "message_deleted"
)

// StreamEvent is one frame pushed to live chat subscribers.
type StreamEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// DeletedMessage is the payload of a message_deleted frame.
type DeletedMessage struct {
	ID string `json:"id"`
}
