package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/calendar"
	"github.com/keiikegami/cirje-seminar-tracker/internal/config"
	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/logger"
	"github.com/keiikegami/cirje-seminar-tracker/internal/render"
	"github.com/keiikegami/cirje-seminar-tracker/internal/scraper"
	"github.com/keiikegami/cirje-seminar-tracker/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDebug   bool
	flagConfig  string
	flagOutDir  string
	flagToday   string
	flagSources []string
	flagTimeout time.Duration
	flagSort    string
	flagFormat  string
	flagVerbose bool
)

// now is the clock used for the reference date and the generation timestamp
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cirje-seminars",
		Short: "Publish upcoming CIRJE workshop seminars",
		Long: `Collects upcoming seminars from the CIRJE workshop pages and publishes
them as a static HTML page, a JSON feed and an iCalendar feed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPublish,
	}

	// Define flags
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Print extracted events instead of writing files")
	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Root directory for artifacts (default from config, '.')")
	cmd.Flags().StringVar(&flagToday, "today", "", "Reference date YYYY-MM-DD (default: today in JST)")
	cmd.Flags().StringArrayVar(&flagSources, "source", nil,
		"Only run this source; repeatable ("+strings.Join(scraper.SourceNames, ", ")+")")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from config, 30s)")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDate), "Debug listing order: date, workshop or source")
	cmd.Flags().StringVar(&flagFormat, "format", string(render.FormatText), "Debug output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runPublish is the main command logic
func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		if flagTimeout <= 0 {
			return fmt.Errorf("invalid timeout: %s", flagTimeout)
		}
		cfg.Timeout = flagTimeout
	}
	if flagOutDir != "" {
		cfg.Output.Dir = flagOutDir
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	order := SortOrder(strings.ToLower(flagSort))
	if !order.valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'date', 'workshop' or 'source')", flagSort)
	}
	format := render.Format(strings.ToLower(flagFormat))
	if format != render.FormatText && format != render.FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if err := checkSources(flagSources); err != nil {
		return err
	}

	today, err := referenceDate(flagToday, now())
	if err != nil {
		return err
	}

	fetcher := scraper.NewFetcher(cfg.Timeout, cfg.UserAgent)
	extractors := scraper.Sources(fetcher, cfg.Overrides(flagSources))
	logger.Info("collecting events", logger.Fields{
		"sources": len(extractors),
		"today":   today.Format(event.DateLayout),
	})

	result := scraper.Collect(cmd.Context(), extractors, today)

	if flagDebug {
		return WriteDebug(cmd.OutOrStdout(), result, format, order, flagVerbose)
	}

	if err := publish(cfg, result.Events, now()); err != nil {
		return err
	}

	logger.Info("run complete", logger.Fields{
		"events":  len(result.Events),
		"failed":  len(result.Failed()),
		"metrics": logger.MetricsSnapshot(),
	})
	return nil
}

// publish renders and writes every artifact. A run with failed sources
// still publishes whatever the other sources produced.
func publish(cfg config.Config, events []*event.Event, generated time.Time) error {
	page, err := render.HTML(events, generated)
	if err != nil {
		return err
	}
	feed, err := render.JSON(events)
	if err != nil {
		return err
	}
	ics, err := calendar.Feed(events, generated)
	if err != nil && !errors.Is(err, calendar.ErrNoEvents) {
		return err
	}

	store, err := storage.New(cfg.Output.Dir, cfg.Paths())
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	previous, err := store.ReadJSON()
	if err != nil {
		logger.Warn("previous feed unreadable", logger.Fields{"error": err.Error()})
	}
	if previous != nil {
		if old, err := render.ParseJSON(previous); err == nil {
			logger.Debug("previous feed loaded", logger.Fields{"events": len(old)})
		} else {
			logger.Warn("previous feed unreadable", logger.Fields{"error": err.Error()})
		}
	}

	written, err := store.WriteArtifacts(storage.Artifacts{HTML: page, JSON: feed, ICS: ics})
	if err != nil {
		return err
	}

	logger.Info("artifacts written", logger.Fields{
		"root":         store.Root(),
		"paths":        written,
		"feed_changed": !bytes.Equal(previous, feed),
	})
	return nil
}

// referenceDate parses value as YYYY-MM-DD, or returns the calendar date of
// t in JST when value is empty.
func referenceDate(value string, t time.Time) (time.Time, error) {
	if value == "" {
		return event.Day(t.In(render.JST)), nil
	}
	d, err := time.Parse(event.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: want YYYY-MM-DD", value)
	}
	return d, nil
}

func checkSources(names []string) error {
	for _, name := range names {
		known := false
		for _, s := range scraper.SourceNames {
			if name == s {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown source %q (known: %s)", name, strings.Join(scraper.SourceNames, ", "))
		}
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
