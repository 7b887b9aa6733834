package transport

import (
	"encoding/json"
	"fmt"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
)

// MessageType names what a push message asks the cache to do.
type MessageType string

const (
	// MessageQueryUpdated carries the new value for a query.
	MessageQueryUpdated MessageType = "query_updated"
	// MessageQueryStale tells the cache to drop and refetch a query.
	MessageQueryStale MessageType = "query_stale"
)

// Message is the wire format published on derived channels.
type Message struct {
	Type     MessageType        `json:"type"`
	QueryKey reconcile.QueryKey `json:"query_key"`
	Data     json.RawMessage    `json:"data,omitempty"`
}

// Validate checks the message type, key and payload.
func (m Message) Validate() error {
	switch m.Type {
	case MessageQueryUpdated:
		if len(m.Data) == 0 {
			return ErrMissingData
		}
	case MessageQueryStale:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	return m.QueryKey.Validate()
}

// Decode parses and validates a raw payload.
func Decode(payload []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
