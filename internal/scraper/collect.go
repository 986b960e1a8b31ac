package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/logger"
)

// Outcome is the result of running one extractor
type Outcome struct {
	Source   string
	Events   []*event.Event
	Err      error
	Duration time.Duration
}

// Result holds every outcome, in extractor order, and the merged events
type Result struct {
	Outcomes []Outcome
	Events   []*event.Event
}

// Failed returns the outcomes of extractors that returned an error
func (r *Result) Failed() []Outcome {
	failed := make([]Outcome, 0)
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Collect runs every extractor and merges their events.
//
// Extractors run concurrently. A failing extractor is logged and contributes
// no events; it never stops the others. Events are concatenated in extractor
// order and then stable-sorted by date, so events on the same date keep that
// order regardless of which extractor finished first.
func Collect(ctx context.Context, extractors []Extractor, today time.Time) *Result {
	outcomes := make([]Outcome, len(extractors))

	var wg sync.WaitGroup
	for i, ex := range extractors {
		wg.Add(1)
		go func(i int, ex Extractor) {
			defer wg.Done()
			outcomes[i] = run(ctx, ex, today)
		}(i, ex)
	}
	wg.Wait()

	result := &Result{
		Outcomes: outcomes,
		Events:   make([]*event.Event, 0),
	}
	for _, o := range outcomes {
		logger.RecordTiming("extract."+o.Source, o.Duration)
		if o.Err != nil {
			logger.IncrCounter("sources.failed")
			logger.Error("source failed", logger.Fields{"source": o.Source}, o.Err)
			continue
		}
		logger.AddCounter("events."+o.Source, int64(len(o.Events)))
		logger.Info("source extracted", logger.Fields{
			"source":   o.Source,
			"events":   len(o.Events),
			"duration": o.Duration.Truncate(time.Millisecond).String(),
		})
		result.Events = append(result.Events, o.Events...)
	}

	event.SortByDate(result.Events)
	return result
}

// run calls one extractor, turning a panic into an error.
func run(ctx context.Context, ex Extractor, today time.Time) (o Outcome) {
	start := time.Now()
	o.Source = ex.Name()
	defer func() {
		if r := recover(); r != nil {
			o.Events = nil
			o.Err = fmt.Errorf("extractor panicked: %v", r)
		}
		o.Duration = time.Since(start)
	}()

	o.Events, o.Err = ex.Extract(ctx, today)
	if o.Err != nil {
		o.Events = nil
	}
	return o
}
