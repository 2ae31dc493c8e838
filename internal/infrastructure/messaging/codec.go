package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/hubverse/hub-services/internal/domain/events"
)

const contentTypeJSON = "application/json"

func encodeEvent(event *events.Event) ([]byte, error) {
	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("event id and type are required")
	}
	return json.Marshal(event)
}

// decodeEvent parses a delivery body. A missing type falls back to the routing key.
func decodeEvent(body []byte, routingKey string) (*events.Event, error) {
	var event events.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if event.Type == "" {
		event.Type = routingKey
	}
	if event.Source == "" {
		event.Source = events.SourceOf(event.Type)
	}
	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("decode event: id and type are required")
	}
	return &event, nil
}
