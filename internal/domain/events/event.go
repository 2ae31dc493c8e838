// Package events defines the domain events exchanged between services.
package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Routing keys. The first segment names the emitting service.
const (
	UserRegistered      = "community.user.registered"
	PostCreated         = "community.post.created"
	ChatCreated         = "community.chat.created"
	ListingCreated      = "marketplace.listing.created"
	OrderPlaced         = "marketplace.order.placed"
	OrderCompleted      = "marketplace.order.completed"
	OrderCancelled      = "marketplace.order.cancelled"
	CoursePublished     = "academy.course.published"
	EnrollmentCreated   = "academy.enrollment.created"
	EnrollmentCompleted = "academy.enrollment.completed"
	BusinessVerified    = "business.business.verified"
)

// Event is one fact published on the bus.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Source     string                 `json:"source"`
	SubjectID  string                 `json:"subject_id"`
	ActorID    string                 `json:"actor_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// New creates an event stamped with a fresh id and the current UTC time.
// Source is derived from the routing key.
func New(eventType, subjectID, actorID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Source:     SourceOf(eventType),
		SubjectID:  subjectID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// SourceOf returns the service segment of a routing key.
func SourceOf(eventType string) string {
	source, _, _ := strings.Cut(eventType, ".")
	return source
}
