package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/keiikegami/cirje-seminar-tracker/internal/render"
	"github.com/keiikegami/cirje-seminar-tracker/internal/scraper"
)

var (
	sourceColor = color.New(color.FgCyan, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
)

// WriteDebug prints the extracted records in the given format. The text
// format is preceded by the event count of every source, failures included;
// the JSON format is the feed alone so it can be piped.
func WriteDebug(w io.Writer, result *scraper.Result, format render.Format, order SortOrder, verbose bool) error {
	events := sortEvents(result.Events, order)
	if format != render.FormatText {
		return render.Write(w, events, format, verbose)
	}

	for _, o := range result.Outcomes {
		label := sourceColor.Sprintf("[%s]", o.Source)
		if o.Err != nil {
			fmt.Fprintf(w, "%s %s %v\n", label, failColor.Sprint("ERROR:"), o.Err)
			continue
		}
		fmt.Fprintf(w, "%s %d events (%s)\n", label, len(o.Events), o.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	return render.Write(w, events, format, verbose)
}
