// Package realtime fans chat events out to WebSocket subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	// SendBuffer is the number of frames queued per subscriber before it is dropped.
	SendBuffer = 16
	// PingInterval is how often the server pings a subscriber.
	PingInterval = 30 * time.Second
	// PongWait is the read deadline, extended by every pong.
	PongWait = 60 * time.Second

	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

// Subscriber is one live connection to a chat.
type Subscriber struct {
	ChatID string
	UserID string

	send      chan []byte
	dropped   chan struct{}
	closeOnce sync.Once
}

// Messages yields the encoded frames queued for the subscriber.
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Dropped is closed when the hub removes the subscriber.
func (s *Subscriber) Dropped() <-chan struct{} {
	return s.dropped
}

func (s *Subscriber) drop() {
	s.closeOnce.Do(func() { close(s.dropped) })
}

// Hub keeps the subscribers of every chat. It implements chats.Broadcaster.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Subscriber]struct{}
	logger logger.Logger

	upgrader     websocket.Upgrader
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewHub creates an empty Hub.
func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Subscriber]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are checked by the CORS middleware in front of the route.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingInterval: PingInterval,
		pongWait:     PongWait,
	}
}

// Subscribe registers a subscriber for chatID.
func (h *Hub) Subscribe(chatID, userID string) *Subscriber {
	s := &Subscriber{
		ChatID:  chatID,
		UserID:  userID,
		send:    make(chan []byte, SendBuffer),
		dropped: make(chan struct{}),
	}

	h.mu.Lock()
	room, ok := h.rooms[chatID]
	if !ok {
		room = make(map[*Subscriber]struct{})
		h.rooms[chatID] = room
	}
	room[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Unsubscribe removes s. It is safe to call more than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	h.removeLocked(s)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(s *Subscriber) {
	if room, ok := h.rooms[s.ChatID]; ok {
		delete(room, s)
		if len(room) == 0 {
			delete(h.rooms, s.ChatID)
		}
	}
	s.drop()
}

// Broadcast encodes event once and queues it for every subscriber of chatID.
// Subscribers whose buffer is full are dropped.
func (h *Hub) Broadcast(chatID string, event chats.StreamEvent) {
	frame, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to encode stream event ", event.Type, ": ", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.rooms[chatID] {
		select {
		case s.send <- frame:
		default:
			h.logger.Warn("Dropping slow subscriber ", s.UserID, " of chat ", chatID)
			h.removeLocked(s)
		}
	}
}

// SubscriberCount returns the number of live subscribers of chatID.
func (h *Hub) SubscriberCount(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for s := range room {
			h.removeLocked(s)
		}
	}
}

// Upgrade switches the request to the WebSocket protocol.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

// Serve streams chat events to conn until the client goes away, the subscriber is
// dropped or ctx is done. It closes conn before returning.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, chatID, userID string) {
	s := h.Subscribe(chatID, userID)
	defer h.Unsubscribe(s)

	readDone := make(chan struct{})
	go h.readPump(conn, readDone)

	defer func() {
		_ = conn.Close()
		<-readDone
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.writeClose(conn, websocket.CloseGoingAway, "server shutting down")
			return
		case <-readDone:
			return
		case <-s.Dropped():
			h.writeClose(conn, websocket.ClosePolicyViolation, "subscriber too slow")
			return
		case frame := <-s.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Debug("Write to subscriber ", userID, " failed: ", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Debug("Ping to subscriber ", userID, " failed: ", err)
				return
			}
		}
	}
}

// readPump discards client frames and keeps the read deadline alive through pongs.
func (h *Hub) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

var _ chats.Broadcaster = (*Hub)(nil)
