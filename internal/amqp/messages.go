package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Operation kinds carried by sync messages.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// ExpenseSyncMessage is a lightweight envelope for syncing an expense to the
// spreadsheet. It carries only the ID and version; the worker fetches the
// full expense from the database. MessageID makes redeliveries traceable in
// the logs.
type ExpenseSyncMessage struct {
	MessageID string    `json:"messageId"`
	Op        string    `json:"op"`
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseSyncMessage creates an upsert message for the given expense.
func NewExpenseSyncMessage(id, version int64) *ExpenseSyncMessage {
	return &ExpenseSyncMessage{
		MessageID: uuid.NewString(),
		Op:        OpUpsert,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewExpenseDeleteMessage creates a delete message for the given expense.
func NewExpenseDeleteMessage(id, version int64) *ExpenseSyncMessage {
	return &ExpenseSyncMessage{
		MessageID: uuid.NewString(),
		Op:        OpDelete,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseSyncMessageFromJSON decodes and validates a message from JSON bytes.
func ExpenseSyncMessageFromJSON(data []byte) (*ExpenseSyncMessage, error) {
	var msg ExpenseSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op == "" {
		// Older producers omitted the op field.
		msg.Op = OpUpsert
	}
	if msg.Op != OpUpsert && msg.Op != OpDelete {
		return nil, fmt.Errorf("unknown op %q", msg.Op)
	}
	return &msg, nil
}
