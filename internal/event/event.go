package event

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TBA replaces the info of an event whose content is not announced yet.
const TBA = "TBA"

// DateLayout is the ISO 8601 calendar date layout used in every artifact.
const DateLayout = "2006-01-02"

// Event represents one upcoming seminar session
type Event struct {
	Date     time.Time // calendar date, midnight UTC
	Workshop string    // series label, e.g. "Macroeconomics WS"
	Info     string    // speaker and/or title, or TBA
	Source   string    // name of the extractor that produced it
}

// Record is the serialized shape of an event in the JSON feed
type Record struct {
	Date     string `json:"date"`
	Workshop string `json:"ws"`
	Info     string `json:"info"`
}

// New creates an Event from the captured content lines.
// It returns false when the lines carry no content.
func New(source, workshop string, date time.Time, lines []string) (*Event, bool) {
	info := BuildInfo(lines)
	if info == "" {
		return nil, false
	}
	return &Event{
		Date:     Day(date),
		Workshop: workshop,
		Info:     info,
		Source:   source,
	}, true
}

// BuildInfo joins content lines with ", ". Any mention of "tba" in any
// case collapses the whole payload to TBA.
func BuildInfo(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), "tba") {
			return TBA
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, ", ")
}

// DateString returns the event date in DateLayout
func (e *Event) DateString() string {
	return e.Date.Format(DateLayout)
}

// Record returns the JSON feed representation of the event
func (e *Event) Record() Record {
	return Record{
		Date:     e.DateString(),
		Workshop: e.Workshop,
		Info:     e.Info,
	}
}

// FromRecord converts a feed record back into an Event
func FromRecord(r Record) (*Event, error) {
	d, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", r.Date, err)
	}
	return &Event{Date: d, Workshop: r.Workshop, Info: r.Info}, nil
}

// GenerateID creates a deterministic ID for an event from its date, workshop and info
func GenerateID(e *Event) string {
	h := sha1.New()
	h.Write([]byte(e.Workshop + "|" + e.DateString() + "|" + e.Info))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SortByDate sorts events ascending by date. Events on the same date keep
// their relative order.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
