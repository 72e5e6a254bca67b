package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// SearchEvent summarises one route search.
type SearchEvent struct {
	SearchID     string    `json:"search_id"`
	Origins      []string  `json:"origins"`
	Destinations []string  `json:"destinations"`
	DateFrom     string    `json:"date_from"`
	DateTo       string    `json:"date_to"`
	Weight       float64   `json:"weight"`
	Candidates   int       `json:"candidates"`
	Categories   []string  `json:"categories"`
	DurationMS   int64     `json:"duration_ms"`
	Failed       bool      `json:"failed"`
	Error        string    `json:"error,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func DecodeSearchEvent(msg kafka.Message) (SearchEvent, error) {
	var event SearchEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return SearchEvent{}, fmt.Errorf("decode search event at offset %d: %w", msg.Offset, err)
	}
	if event.SearchID == "" {
		event.SearchID = string(msg.Key)
	}
	return event, nil
}
