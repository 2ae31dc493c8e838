package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
)

// chatService implements the ChatService interface
type chatService struct {
	chatRepo  chats.ChatRepository
	userRepo  users.UserRepository
	publisher events.Publisher
	logger    logger.Logger
}

// NewChatService creates a new instance of ChatService
func NewChatService(
	chatRepo chats.ChatRepository,
	userRepo users.UserRepository,
	publisher events.Publisher,
	logger logger.Logger,
) (chats.ChatService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &chatService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *chatService) Create(ctx context.Context, caller auth.Principal, input *chats.CreateChatInput) (*chats.Chat, bool, error) {
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	others := otherMembers(caller.UserID, input.MemberIDs)

	if input.IsDirect {
		if len(others) != 1 {
			return nil, false, apperr.Invalid("a direct chat needs exactly one other member")
		}
		existing, err := s.chatRepo.FindDirect(ctx, caller.UserID, others[0])
		if err == nil {
			return s.rejoinDirect(ctx, existing, caller.UserID, others[0])
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, false, err
		}
	}

	if err := s.ensureUsersExist(ctx, others); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	chat := &chats.Chat{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		IsDirect:        input.IsDirect,
		CreatedBy:       caller.UserID,
		DateTimeCreated: now,
	}
	for _, userID := range append([]string{caller.UserID}, others...) {
		chat.Members = append(chat.Members, &chats.ChatMember{ChatID: chat.ID, UserID: userID, DateTimeJoined: now})
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		// Another request created the same direct chat first.
		if input.IsDirect && errors.Is(err, apperr.ErrConflict) {
			existing, findErr := s.chatRepo.FindDirect(ctx, caller.UserID, others[0])
			if findErr == nil {
				return s.rejoinDirect(ctx, existing, caller.UserID, others[0])
			}
		}
		return nil, false, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.ChatCreated, chat.ID, caller.UserID, map[string]interface{}{
		"is_direct": chat.IsDirect,
		"members":   len(chat.Members),
	}))
	return chat, true, nil
}

// rejoinDirect restores members that left a direct chat, so the pair keeps one
// conversation however often either side leaves.
func (s *chatService) rejoinDirect(ctx context.Context, chat *chats.Chat, userIDs ...string) (*chats.Chat, bool, error) {
	now := time.Now().UTC()
	for _, userID := range userIDs {
		if chat.HasMember(userID) {
			continue
		}
		member := &chats.ChatMember{ChatID: chat.ID, UserID: userID, DateTimeJoined: now}
		// A conflict means a concurrent request rejoined the user first.
		if err := s.chatRepo.AddMember(ctx, member); err != nil && !errors.Is(err, apperr.ErrConflict) {
			return nil, false, err
		}
		chat.Members = append(chat.Members, member)
	}
	return chat, false, nil
}

// otherMembers de-duplicates ids and removes the caller.
func otherMembers(callerID string, ids []string) []string {
	seen := map[string]bool{callerID: true}
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *chatService) ensureUsersExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(found))
	for _, u := range found {
		known[u.ID] = true
	}
	var unknown []string
	for _, id := range ids {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return apperr.Invalid("unknown member ids: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (s *chatService) ListForUser(ctx context.Context, userID string) ([]*chats.Chat, error) {
	return s.chatRepo.ListByMember(ctx, userID)
}

func (s *chatService) Get(ctx context.Context, caller auth.Principal, chatID string) (*chats.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasMember(caller.UserID) {
		return nil, apperr.Forbidden("not a member of chat %s", chatID)
	}
	return chat, nil
}

func (s *chatService) AddMember(ctx context.Context, caller auth.Principal, chatID, userID string) (*chats.ChatMember, error) {
	chat, err := s.Get(ctx, caller, chatID)
	if err != nil {
		return nil, err
	}
	if chat.IsDirect {
		return nil, apperr.Invalid("members cannot be added to a direct chat")
	}
	if chat.HasMember(userID) {
		return nil, apperr.Conflict("user %s is already a member", userID)
	}
	if err := s.ensureUsersExist(ctx, []string{userID}); err != nil {
		return nil, err
	}

	member := &chats.ChatMember{ChatID: chatID, UserID: userID, DateTimeJoined: time.Now().UTC()}
	if err := s.chatRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *chatService) Leave(ctx context.Context, caller auth.Principal, chatID string) error {
	if err := s.EnsureMember(ctx, chatID, caller.UserID); err != nil {
		return err
	}
	return s.chatRepo.RemoveMember(ctx, chatID, caller.UserID)
}

func (s *chatService) EnsureMember(ctx context.Context, chatID, userID string) error {
	ok, err := s.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.chatRepo.GetByID(ctx, chatID); err != nil {
			return err
		}
		return apperr.Forbidden("not a member of chat %s", chatID)
	}
	return nil
}

// messageService implements the MessageService interface
type messageService struct {
	messageRepo chats.MessageRepository
	chatService chats.ChatService
	broadcaster chats.Broadcaster
	logger      logger.Logger
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, chats.StreamEvent) {}

// NewMessageService creates a new instance of MessageService. A nil broadcaster disables live updates.
func NewMessageService(
	messageRepo chats.MessageRepository,
	chatService chats.ChatService,
	broadcaster chats.Broadcaster,
	logger logger.Logger,
) (chats.MessageService, error) {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &messageService{
		messageRepo: messageRepo,
		chatService: chatService,
		broadcaster: broadcaster,
		logger:      logger,
	}, nil
}

func (s *messageService) Send(ctx context.Context, caller auth.Principal, chatID, body string) (*chats.Message, error) {
	if err := s.chatService.EnsureMember(ctx, chatID, caller.UserID); err != nil {
		return nil, err
	}

	msg := &chats.Message{
		ID:              uuid.NewString(),
		ChatID:          chatID,
		SenderID:        caller.UserID,
		Body:            body,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(chatID, chats.StreamEvent{Type: chats.StreamEventMessage, Data: msg})
	return msg, nil
}

func (s *messageService) List(ctx context.Context, caller auth.Principal, chatID string, query *chats.MessageQuery) ([]*chats.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := s.chatService.EnsureMember(ctx, chatID, caller.UserID); err != nil {
		return nil, err
	}
	return s.messageRepo.List(ctx, chatID, query)
}

func (s *messageService) Edit(ctx context.Context, caller auth.Principal, chatID, messageID, body string) (*chats.Message, error) {
	if err := s.chatService.EnsureMember(ctx, chatID, caller.UserID); err != nil {
		return nil, err
	}
	msg, err := s.messageIn(ctx, chatID, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != caller.UserID {
		return nil, apperr.Forbidden("only the sender may edit message %s", messageID)
	}

	edited := time.Now().UTC()
	msg.Body = body
	msg.DateTimeEdited = &edited
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := s.messageRepo.UpdateByID(ctx, msg); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(chatID, chats.StreamEvent{Type: chats.StreamEventMessageEdited, Data: msg})
	return msg, nil
}

func (s *messageService) Delete(ctx context.Context, caller auth.Principal, chatID, messageID string) error {
	if !caller.IsAdmin() {
		if err := s.chatService.EnsureMember(ctx, chatID, caller.UserID); err != nil {
			return err
		}
	}
	msg, err := s.messageIn(ctx, chatID, messageID)
	if err != nil {
		return err
	}
	if !caller.Owns(msg.SenderID) {
		return apperr.Forbidden("only the sender may delete message %s", messageID)
	}
	if err := s.messageRepo.DeleteByID(ctx, messageID); err != nil {
		return err
	}

	s.broadcaster.Broadcast(chatID, chats.StreamEvent{Type: chats.StreamEventMessageDeleted, Data: chats.DeletedMessage{ID: messageID}})
	return nil
}

// messageIn loads a message and hides messages of other chats.
func (s *messageService) messageIn(ctx context.Context, chatID, messageID string) (*chats.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ChatID != chatID {
		return nil, apperr.NotFound("message %s not found", messageID)
	}
	return msg, nil
}
