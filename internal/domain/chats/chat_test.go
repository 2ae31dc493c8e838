//go:build unit
// +build unit

package chats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectKeyIsOrderIndependent(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	assert.Equal(t, DirectKey(a, b), DirectKey(b, a))
	assert.NotEqual(t, DirectKey(a, b), DirectKey(a, uuid.NewString()))
}

func TestChatHasMember(t *testing.T) {
	chat := &Chat{Members: []*ChatMember{{UserID: "u1"}, {UserID: "u2"}}}
	assert.True(t, chat.HasMember("u2"))
	assert.False(t, chat.HasMember("u3"))
}

func TestCreateChatInputValidation(t *testing.T) {
	assert.NoError(t, (&CreateChatInput{Name: "team", MemberIDs: []string{uuid.NewString()}}).Validate())
	assert.Error(t, (&CreateChatInput{MemberIDs: []string{"nope"}}).Validate())
}

func TestMessageQueryValidate(t *testing.T) {
	q := &MessageQuery{}
	require.NoError(t, q.Validate())
	assert.Equal(t, query.DefaultLimit, q.Limit)

	assert.Error(t, (&MessageQuery{Limit: 101}).Validate())

	var zero time.Time
	assert.Error(t, (&MessageQuery{Before: &zero}).Validate())
}
