package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/textnorm"
)

// Extractor turns one upstream page into upcoming events
type Extractor interface {
	// Name identifies the source in logs and configuration
	Name() string
	// Extract returns the events dated on or after today
	Extract(ctx context.Context, today time.Time) ([]*event.Event, error)
}

// LineSource extracts events by scanning the visible text lines of a page.
//
// The scan alternates between looking for a date label and looking for a
// content label. Content is every following line up to a terminator, the
// next date label or the next content label; it is joined into the event
// info. Events with unresolvable dates, no content, or dates before today
// are dropped.
//
// A date label met while looking for content replaces the pending date
// instead of being skipped, so a session listed without speaker lines does
// not lend its date to the next one.
type LineSource struct {
	Key      string
	Workshop string
	URL      string
	Fetcher  Fetcher

	// DateLabel finds the line carrying the date. With DateInline the date is
	// on that line; otherwise it is on the next line unless the label line
	// itself already contains a date.
	DateLabel  Matcher
	DateInline bool

	// CarryDate keeps a date pending after an event is emitted, so several
	// content blocks under one date share it.
	CarryDate bool

	ContentLabel Matcher

	// Terminators end content capture in addition to the date and content
	// labels. The terminating line is not consumed.
	Terminators []Matcher

	// SkipLabels are field labels inside a content block. A bare label is
	// skipped; a label followed by a colon and text contributes the text.
	SkipLabels []Matcher

	// StopMarkers end extraction, e.g. a "Past Seminars" heading.
	StopMarkers []Matcher

	// DefaultYear applies to dates without a year. Zero selects the academic
	// year containing today.
	DefaultYear int
}

// Name returns the source key
func (s *LineSource) Name() string {
	return s.Key
}

// Extract fetches the page and parses its lines
func (s *LineSource) Extract(ctx context.Context, today time.Time) ([]*event.Event, error) {
	if s.Fetcher == nil {
		return nil, fmt.Errorf("source %s: no fetcher configured", s.Key)
	}
	page, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	lines, err := textnorm.ToLines(page)
	if err != nil {
		return nil, err
	}
	return s.Parse(lines, today), nil
}

// Parse runs the state machine over already flattened lines
func (s *LineSource) Parse(lines []string, today time.Time) []*event.Event {
	year := s.DefaultYear
	if year == 0 {
		year = event.AcademicYear(today)
	}

	events := make([]*event.Event, 0)
	var pending string
	hasDate := false

	for i := 0; i < len(lines); {
		line := lines[i]

		switch {
		case matchAny(s.StopMarkers, line):
			return events

		case s.DateLabel != nil && s.DateLabel(line):
			raw, next, ok := s.captureDate(lines, i)
			if !ok {
				return events
			}
			pending, hasDate = raw, true
			i = next

		case s.ContentLabel != nil && s.ContentLabel(line):
			content, next := s.captureContent(lines, i)
			i = next
			if !hasDate {
				continue
			}
			if evt, ok := s.emit(pending, content, year, today); ok {
				events = append(events, evt)
			}
			if !s.CarryDate {
				hasDate = false
			}

		default:
			i++
		}
	}

	return events
}

// captureDate returns the raw date for the label at lines[i] and the index to
// continue from. ok is false when the label is the last line.
func (s *LineSource) captureDate(lines []string, i int) (string, int, bool) {
	if s.DateInline {
		return textnorm.StripWeekday(lines[i]), i + 1, true
	}
	if event.HasExplicitDate(lines[i]) {
		return textnorm.StripWeekday(lines[i]), i + 1, true
	}
	if i+1 >= len(lines) {
		return "", 0, false
	}
	return textnorm.StripWeekday(lines[i+1]), i + 2, true
}

// captureContent collects content starting at the content label lines[i].
func (s *LineSource) captureContent(lines []string, i int) ([]string, int) {
	content := make([]string, 0)
	if v := labelValue(lines[i]); v != "" {
		content = append(content, textnorm.TrimQuotes(v))
	}

	for i++; i < len(lines); i++ {
		line := lines[i]
		if s.endsContent(line) {
			break
		}
		if matchAny(s.SkipLabels, line) {
			if v := labelValue(line); v != "" {
				content = append(content, textnorm.TrimQuotes(v))
			}
			continue
		}
		content = append(content, textnorm.TrimQuotes(line))
	}
	return content, i
}

// endsContent reports whether line closes a content block. Field labels of
// the next session always do, whatever the source's own terminators.
func (s *LineSource) endsContent(line string) bool {
	if s.DateLabel != nil && s.DateLabel(line) {
		return true
	}
	if s.ContentLabel != nil && s.ContentLabel(line) {
		return true
	}
	return matchAny(s.Terminators, line) || matchAny(s.StopMarkers, line)
}

func (s *LineSource) emit(rawDate string, content []string, year int, today time.Time) (*event.Event, bool) {
	d, ok := event.Resolve(rawDate, year, today)
	if !ok {
		return nil, false
	}
	evt, ok := event.New(s.Key, s.Workshop, d, content)
	if !ok || !evt.IsUpcoming(today) {
		return nil, false
	}
	return evt, true
}
