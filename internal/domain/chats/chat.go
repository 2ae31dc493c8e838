package chats

import (
	"sort"
	"strings"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/validators"
)

// Chat entity. Members is populated when the chat is loaded with its membership.
type Chat struct {
	ID              string    `validate:"required,uuid4"`
	Name            string    `validate:"max=100"`
	IsDirect        bool
	CreatedBy       string    `validate:"required,uuid4"`
	DateTimeCreated time.Time `validate:"required"`
	Members         []*ChatMember
}

// Validate for validating Chat struct
func (c *Chat) Validate() error {
	return validators.ValidateStruct(c)
}

// HasMember reports whether userID is among the loaded members.
func (c *Chat) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// DirectKey identifies the direct chat between two users regardless of order.
func DirectKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

// ChatMember links a user to a chat.
type ChatMember struct {
	ChatID         string    `validate:"required,uuid4"`
	UserID         string    `validate:"required,uuid4"`
	DateTimeJoined time.Time `validate:"required"`
}

// CreateChatInput carries the fields of a new chat.
type CreateChatInput struct {
	Name      string   `validate:"max=100"`
	MemberIDs []string `validate:"max=100,dive,uuid4"`
	IsDirect  bool
}

// Validate for validating CreateChatInput struct
func (in *CreateChatInput) Validate() error {
	return validators.ValidateStruct(in)
}
