package amqp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMutationMessage(t *testing.T) {
	msg := NewMutationMessage("expenses", ActionDelete, 42)

	assert.Equal(t, "expenses", msg.Resource)
	assert.Equal(t, ActionDelete, msg.Action)
	assert.EqualValues(t, 42, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
	assert.LessOrEqual(t, time.Since(msg.Timestamp), time.Second)
}

func TestMutationMessageJSON(t *testing.T) {
	msg := &MutationMessage{
		Resource:  "contributions",
		Action:    ActionCreate,
		ID:        7,
		Timestamp: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := msg.ToJSON()
	require.NoError(t, err)

	parsed, err := MutationMessageFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, msg.Resource, parsed.Resource)
	assert.Equal(t, msg.Action, parsed.Action)
	assert.Equal(t, msg.ID, parsed.ID)
	assert.True(t, parsed.Timestamp.Equal(msg.Timestamp))
}

func TestMutationMessageInvalidJSON(t *testing.T) {
	_, err := MutationMessageFromJSON([]byte(`{"id": "not_a_number"}`))
	assert.Error(t, err)
}
