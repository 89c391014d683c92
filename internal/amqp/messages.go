package amqp

import (
	"encoding/json"
	"time"
)

// Event operations carried on the sync queue.
const (
	OpSync   = "sync"
	OpDelete = "delete"
)

// TransactionEventMessage is a lightweight notification that a ledger
// transaction changed. It carries only the operation and the id; the
// worker fetches the full transaction from the store when it needs it.
type TransactionEventMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage creates a sync event for a created transaction.
func NewTransactionSyncMessage(id string) *TransactionEventMessage {
	return &TransactionEventMessage{
		Op:        OpSync,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// NewTransactionDeleteMessage creates a delete event for a removed transaction.
func NewTransactionDeleteMessage(id string) *TransactionEventMessage {
	return &TransactionEventMessage{
		Op:        OpDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON creates a message from JSON bytes.
func TransactionEventFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
