package amqp

import (
	"encoding/json"
	"time"
)

// Mutation actions carried on the wire.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// MutationMessage describes one write against a fund resource. It carries
// only the resource, action and id; consumers fetch current state themselves.
type MutationMessage struct {
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMutationMessage creates a message stamped with the current time.
func NewMutationMessage(resource, action string, id int64) *MutationMessage {
	return &MutationMessage{
		Resource:  resource,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MutationMessageFromJSON creates a message from JSON bytes.
func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
