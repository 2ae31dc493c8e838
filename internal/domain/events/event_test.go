//go:build unit
// +build unit

package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	ev := New(OrderPlaced, "order-1", "buyer-1", map[string]interface{}{"amount_cents": 1200})

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, "marketplace", ev.Source)
	assert.Equal(t, "order-1", ev.SubjectID)
	assert.Equal(t, "buyer-1", ev.ActorID)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Second)
}

func TestSourceOf(t *testing.T) {
	assert.Equal(t, "community", SourceOf(UserRegistered))
	assert.Equal(t, "academy", SourceOf(EnrollmentCompleted))
	assert.Equal(t, "business", SourceOf(BusinessVerified))
	assert.Equal(t, "plain", SourceOf("plain"))
}
