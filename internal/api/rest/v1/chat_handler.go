package v1

import (
	"context"
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatStream upgrades a request and pushes a chat's events to it.
type ChatStream interface {
	Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error)
	Serve(ctx context.Context, conn *websocket.Conn, chatID, userID string)
}

// ChatHandler defines chat, membership and message endpoints
type ChatHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	AddMember(ctx *gin.Context)
	Leave(ctx *gin.Context)
	SendMessage(ctx *gin.Context)
	ListMessages(ctx *gin.Context)
	EditMessage(ctx *gin.Context)
	DeleteMessage(ctx *gin.Context)
	Stream(ctx *gin.Context)
}

type chatHandler struct {
	chatService    chats.ChatService
	messageService chats.MessageService
	stream         ChatStream
	logger         logger.Logger
}

// NewChatHandler creates a new ChatHandler. A nil stream disables the WebSocket endpoint.
func NewChatHandler(chatService chats.ChatService, messageService chats.MessageService, stream ChatStream, logger logger.Logger) ChatHandler {
	return &chatHandler{
		chatService:    chatService,
		messageService: messageService,
		stream:         stream,
		logger:         logger,
	}
}

// Create starts a chat. An existing direct chat is returned with 200 instead of 201.
func (handler *chatHandler) Create(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ChatRequest
	if !bindJSON(ctx, &request) {
		return
	}

	chat, created, err := handler.chatService.Create(ctx.Request.Context(), p, &chats.CreateChatInput{
		Name:      request.Name,
		MemberIDs: request.MemberIDs,
		IsDirect:  request.IsDirect,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, toChatResponse(chat))
}

// List returns the chats the caller belongs to
func (handler *chatHandler) List(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	list, err := handler.chatService.ListForUser(ctx.Request.Context(), p.UserID)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toChatResponse))
}

// GetByID returns a chat with its members
func (handler *chatHandler) GetByID(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	chat, err := handler.chatService.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toChatResponse(chat))
}

// AddMember adds a user to a group chat
func (handler *chatHandler) AddMember(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ChatMemberRequest
	if !bindJSON(ctx, &request) {
		return
	}

	member, err := handler.chatService.AddMember(ctx.Request.Context(), p, ctx.Param("id"), request.UserID)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ChatMemberResponse{UserID: member.UserID, DateTimeJoined: member.DateTimeJoined})
}

// Leave removes the caller from a chat
func (handler *chatHandler) Leave(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.chatService.Leave(ctx.Request.Context(), p, ctx.Param("id")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SendMessage posts a message and pushes it to live subscribers
func (handler *chatHandler) SendMessage(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request MessageRequest
	if !bindJSON(ctx, &request) {
		return
	}

	msg, err := handler.messageService.Send(ctx.Request.Context(), p, ctx.Param("id"), request.Body)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, msg)
}

// ListMessages returns a newest-first page. before is an RFC3339 cursor.
func (handler *chatHandler) ListMessages(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	before, err := timeQuery(ctx, "before")
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	limit, err := intQuery(ctx, "limit", 0)
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	list, err := handler.messageService.List(ctx.Request.Context(), p, ctx.Param("id"), &chats.MessageQuery{Before: before, Limit: limit})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	if list == nil {
		list = []*chats.Message{}
	}
	ctx.JSON(http.StatusOK, list)
}

// EditMessage replaces the body of the caller's own message
func (handler *chatHandler) EditMessage(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request MessageRequest
	if !bindJSON(ctx, &request) {
		return
	}

	msg, err := handler.messageService.Edit(ctx.Request.Context(), p, ctx.Param("id"), ctx.Param("messageId"), request.Body)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msg)
}

// DeleteMessage removes a message; sender or admin only
func (handler *chatHandler) DeleteMessage(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.messageService.Delete(ctx.Request.Context(), p, ctx.Param("id"), ctx.Param("messageId")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Stream upgrades to a WebSocket carrying the chat's live events. Membership is
// checked before the upgrade so failures are plain JSON errors.
func (handler *chatHandler) Stream(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if handler.stream == nil {
		respond.Message(ctx, http.StatusNotImplemented, "live updates are disabled")
		return
	}
	chatID := ctx.Param("id")
	if err := handler.chatService.EnsureMember(ctx.Request.Context(), chatID, p.UserID); err != nil {
		respond.Error(ctx, err)
		return
	}

	conn, err := handler.stream.Upgrade(ctx.Writer, ctx.Request)
	if err != nil {
		// The upgrader already wrote the handshake error.
		handler.logger.Debug("WebSocket upgrade failed for chat ", chatID, ": ", err)
		ctx.Abort()
		return
	}
	handler.stream.Serve(ctx.Request.Context(), conn, chatID, p.UserID)
}
