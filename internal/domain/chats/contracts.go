package chats

import (
	"context"

	"github.com/hubverse/hub-services/internal/pkg/auth"
)

// ChatService manages chats and their membership.
type ChatService interface {
	// Create starts a chat with the caller as member. For direct chats an existing
	// chat between the two users is returned with created=false.
	Create(ctx context.Context, caller auth.Principal, input *CreateChatInput) (chat *Chat, created bool, err error)

	// ListForUser returns the chats userID belongs to.
	ListForUser(ctx context.Context, userID string) ([]*Chat, error)

	// Get returns the chat with members. Non-members get apperr.ErrForbidden.
	Get(ctx context.Context, caller auth.Principal, chatID string) (*Chat, error)

	// AddMember adds userID to a group chat the caller belongs to.
	AddMember(ctx context.Context, caller auth.Principal, chatID, userID string) (*ChatMember, error)

	// Leave removes the caller from the chat.
	Leave(ctx context.Context, caller auth.Principal, chatID string) error

	// EnsureMember fails with apperr.ErrForbidden unless userID belongs to the chat.
	EnsureMember(ctx context.Context, chatID, userID string) error
}

// MessageService manages chat messages and notifies live subscribers.
type MessageService interface {
	Send(ctx context.Context, caller auth.Principal, chatID, body string) (*Message, error)
	List(ctx context.Context, caller auth.Principal, chatID string, query *MessageQuery) ([]*Message, error)
	// Edit changes the body of the caller's own message.
	Edit(ctx context.Context, caller auth.Principal, chatID, messageID, body string) (*Message, error)
	// Delete removes a message. Allowed for the sender and admins.
	Delete(ctx context.Context, caller auth.Principal, chatID, messageID string) error
}

// Broadcaster fans stream events out to the subscribers of a chat.
type Broadcaster interface {
	Broadcast(chatID string, event StreamEvent)
}

// ChatRepository defines the interface for Chat-related operations
type ChatRepository interface {
	// Create stores the chat and its members in one transaction.
	Create(ctx context.Context, chat *Chat) error
	// GetByID returns the chat with its members.
	GetByID(ctx context.Context, chatID string) (*Chat, error)
	ListByMember(ctx context.Context, userID string) ([]*Chat, error)
	// FindDirect returns the direct chat between two users.
	FindDirect(ctx context.Context, userA, userB string) (*Chat, error)
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
	AddMember(ctx context.Context, member *ChatMember) error
	RemoveMember(ctx context.Context, chatID, userID string) error
}

// MessageRepository defines the interface for Message-related operations
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, messageID string) (*Message, error)
	List(ctx context.Context, chatID string, query *MessageQuery) ([]*Message, error)
	UpdateByID(ctx context.Context, message *Message) error
	DeleteByID(ctx context.Context, messageID string) error
}
