package scraper

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/logger"
)

type fakeExtractor struct {
	name   string
	events []*event.Event
	err    error
	panics bool
	delay  time.Duration
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(ctx context.Context, _ time.Time) ([]*event.Event, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panics {
		panic("boom")
	}
	return f.events, f.err
}

func fakeEvent(source string, d time.Time, info string) *event.Event {
	return &event.Event{Date: d, Workshop: source + " WS", Info: info, Source: source}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Default()
	logger.SetDefault(logger.New(logger.LevelInfo, &buf))
	t.Cleanup(func() { logger.SetDefault(prev) })
	return &buf
}

func TestCollect_IsolatesFailures(t *testing.T) {
	logs := captureLogs(t)
	errDown := errors.New("site down")

	extractors := []Extractor{
		&fakeExtractor{name: "a", events: []*event.Event{
			fakeEvent("a", day(2025, time.November, 1), "a1"),
			fakeEvent("a", day(2025, time.October, 1), "a2"),
		}},
		&fakeExtractor{name: "b", err: errDown, events: []*event.Event{
			fakeEvent("b", day(2025, time.October, 2), "discarded"),
		}},
		&fakeExtractor{name: "c", events: []*event.Event{fakeEvent("c", day(2025, time.September, 5), "c1")}},
		&fakeExtractor{name: "d"},
		&fakeExtractor{name: "e", events: []*event.Event{fakeEvent("e", day(2025, time.October, 1), "e1")}},
	}

	result := Collect(context.Background(), extractors, testToday)

	var infos []string
	for _, e := range result.Events {
		infos = append(infos, e.Info)
	}
	if got, want := strings.Join(infos, ","), "c1,a2,e1,a1"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}

	failed := result.Failed()
	if len(failed) != 1 {
		t.Fatalf("Expected 1 failed source, got %d", len(failed))
	}
	if failed[0].Source != "b" || !errors.Is(failed[0].Err, errDown) {
		t.Errorf("failed = %+v, want source b with errDown", failed[0])
	}

	if len(result.Outcomes) != len(extractors) {
		t.Fatalf("Expected %d outcomes, got %d", len(extractors), len(result.Outcomes))
	}
	for i, o := range result.Outcomes {
		if o.Source != extractors[i].Name() {
			t.Errorf("outcome %d source = %q, want %q", i, o.Source, extractors[i].Name())
		}
	}

	out := logs.String()
	if !strings.Contains(out, `"message":"source failed"`) || !strings.Contains(out, "site down") {
		t.Errorf("failure not logged: %s", out)
	}
}

func TestCollect_StableAcrossCompletionOrder(t *testing.T) {
	captureLogs(t)
	d := day(2025, time.October, 1)

	// The first extractor finishes last; its event must still come first.
	extractors := []Extractor{
		&fakeExtractor{name: "slow", delay: 30 * time.Millisecond, events: []*event.Event{fakeEvent("slow", d, "first")}},
		&fakeExtractor{name: "fast", events: []*event.Event{fakeEvent("fast", d, "second")}},
	}

	result := Collect(context.Background(), extractors, testToday)
	if len(result.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(result.Events))
	}
	if result.Events[0].Info != "first" || result.Events[1].Info != "second" {
		t.Errorf("order = %q, %q; want first, second", result.Events[0].Info, result.Events[1].Info)
	}
}

func TestCollect_RecoversPanic(t *testing.T) {
	captureLogs(t)

	extractors := []Extractor{
		&fakeExtractor{name: "bad", panics: true},
		&fakeExtractor{name: "good", events: []*event.Event{fakeEvent("good", day(2025, time.October, 1), "ok")}},
	}

	result := Collect(context.Background(), extractors, testToday)
	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(result.Events))
	}
	failed := result.Failed()
	if len(failed) != 1 || failed[0].Source != "bad" {
		t.Fatalf("failed = %+v, want source bad", failed)
	}
	if !strings.Contains(failed[0].Err.Error(), "panicked") {
		t.Errorf("error = %v, want a panic error", failed[0].Err)
	}
}

func TestCollect_NoExtractors(t *testing.T) {
	result := Collect(context.Background(), nil, testToday)
	if result.Events == nil || len(result.Events) != 0 {
		t.Errorf("Events = %v, want empty non-nil slice", result.Events)
	}
	if len(result.Failed()) != 0 {
		t.Error("Expected no failures")
	}
}
