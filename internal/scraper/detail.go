package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/textnorm"
)

// DetailSource extracts events from a calendar list page whose entries carry
// a machine-readable date and a link to a detail page. Speaker and title are
// read from the detail page of every upcoming entry.
type DetailSource struct {
	Key      string
	Workshop string
	URL      string
	Fetcher  Fetcher

	// EventSelector selects one list entry. Each entry must contain a
	// <time datetime="..."> element and a link matching LinkSelector.
	EventSelector string
	LinkSelector  string

	// Marker is the series name printed after the speaker on detail pages.
	Marker string

	// TitleLabels are lowercase prefixes of the title line.
	TitleLabels []string
}

type listEntry struct {
	date time.Time
	link string
}

// Name returns the source key
func (s *DetailSource) Name() string {
	return s.Key
}

// Extract fetches the list page and then the detail page of every upcoming entry.
// A failed detail fetch fails the whole source.
func (s *DetailSource) Extract(ctx context.Context, today time.Time) ([]*event.Event, error) {
	if s.Fetcher == nil {
		return nil, fmt.Errorf("source %s: no fetcher configured", s.Key)
	}
	page, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}

	entries, err := s.parseList(page, today)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(entries))
	for _, entry := range entries {
		detail, err := s.Fetcher.Fetch(ctx, entry.link)
		if err != nil {
			return nil, fmt.Errorf("fetching detail %s: %w", entry.link, err)
		}
		lines, err := textnorm.ToLines(detail)
		if err != nil {
			return nil, err
		}
		speaker, title, ok := s.parseDetail(lines)
		if !ok {
			continue
		}

		info := speaker + ", " + title
		if strings.Contains(strings.ToLower(speaker+title), "tba") {
			info = event.TBA
		}
		events = append(events, &event.Event{
			Date:     entry.date,
			Workshop: s.Workshop,
			Info:     info,
			Source:   s.Key,
		})
	}
	return events, nil
}

// parseList returns the upcoming entries of the list page in page order.
// Entries without a valid date or link are skipped.
func (s *DetailSource) parseList(page string, today time.Time) ([]listEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	base, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL: %w", err)
	}

	entries := make([]listEntry, 0)
	doc.Find(s.EventSelector).Each(func(_ int, sel *goquery.Selection) {
		stamp, ok := sel.Find("time").First().Attr("datetime")
		if !ok {
			return
		}
		day, _, _ := strings.Cut(strings.TrimSpace(stamp), "T")
		d, err := time.Parse(event.DateLayout, day)
		if err != nil || d.Before(event.Day(today)) {
			return
		}

		href, ok := sel.Find(s.LinkSelector).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		entries = append(entries, listEntry{date: d, link: base.ResolveReference(ref).String()})
	})
	return entries, nil
}

// parseDetail finds the speaker (the text before the series marker) and the
// title (the text after a title label). ok is false if either is missing.
func (s *DetailSource) parseDetail(lines []string) (speaker, title string, ok bool) {
	for _, line := range lines {
		if before, _, found := strings.Cut(line, s.Marker); found {
			speaker = strings.Trim(before, " 　")
		}
		if v, found := s.titleValue(line); found {
			title = v
		}
		if speaker != "" && title != "" {
			return speaker, title, true
		}
	}
	return "", "", false
}

func (s *DetailSource) titleValue(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, label := range s.TitleLabels {
		if !strings.HasPrefix(lower, label) {
			continue
		}
		v := line
		if _, after, found := strings.Cut(v, ":"); found {
			v = after
		}
		if _, after, found := strings.Cut(v, "："); found {
			v = after
		}
		return strings.TrimSpace(v), true
	}
	return "", false
}
