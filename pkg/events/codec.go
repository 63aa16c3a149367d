package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMissingType = errors.New("event has no type")

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// Marshal encodes an event for the wire.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type:       e.EventType(),
		OccurredAt: e.Timestamp(),
		Payload:    e.Payload(),
	})
}

func Unmarshal(b []byte) (BaseEvent, error) {
	return UnmarshalWithType(b, "")
}

// UnmarshalWithType uses fallbackType when the encoded event has none.
func UnmarshalWithType(b []byte, fallbackType string) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		env.Type = fallbackType
	}
	if env.Type == "" {
		return BaseEvent{}, ErrMissingType
	}
	if env.Payload == nil {
		env.Payload = map[string]interface{}{}
	}
	return BaseEvent{Type: env.Type, Data: env.Payload, OccurredAt: env.OccurredAt}, nil
}
