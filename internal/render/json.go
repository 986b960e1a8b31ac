package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
)

// JSON renders the feed: an array of {date, ws, info} objects indented by two
// spaces. Non-ASCII text and HTML metacharacters are written literally.
func JSON(events []*event.Event) ([]byte, error) {
	records := make([]event.Record, 0, len(events))
	for _, e := range events {
		records = append(records, e.Record())
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding events: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseJSON reads a feed written by JSON back into events
func ParseJSON(data []byte) ([]*event.Event, error) {
	var records []event.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}

	events := make([]*event.Event, 0, len(records))
	for i, r := range records {
		e, err := event.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
