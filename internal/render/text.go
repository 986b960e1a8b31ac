package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
)

// Format specifies the output format of Write
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	dateColor     = color.New(color.FgCyan)
	workshopColor = color.New(color.FgGreen, color.Bold)
	tbaColor      = color.New(color.FgYellow)
)

// Write writes events in the given format
func Write(w io.Writer, events []*event.Event, format Format, verbose bool) error {
	switch format {
	case FormatJSON:
		data, err := JSON(events)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatText:
		return Text(w, events, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Text writes one line per event. With verbose, the source and event ID
// follow each line. Colors are dropped when color output is disabled.
func Text(w io.Writer, events []*event.Event, verbose bool) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No upcoming events found.")
		return err
	}

	for _, e := range events {
		info := e.Info
		if info == event.TBA {
			info = tbaColor.Sprint(info)
		}
		_, err := fmt.Fprintf(w, "%s  %s  %s\n",
			dateColor.Sprint(e.DateString()), workshopColor.Sprint(e.Workshop), info)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(w, "    Source: %s\n", e.Source)
			fmt.Fprintf(w, "    ID: %s\n", event.GenerateID(e))
		}
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d events\n", len(events))
	return err
}
