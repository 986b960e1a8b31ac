package cli

import (
	"sort"
	"strings"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
	"github.com/keiikegami/cirje-seminar-tracker/internal/scraper"
)

// SortOrder represents the available sorting options of the debug listing
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByWorkshop SortOrder = "workshop"
	SortBySource   SortOrder = "source"
)

func (o SortOrder) valid() bool {
	switch o {
	case SortByDate, SortByWorkshop, SortBySource:
		return true
	}
	return false
}

// sortEvents sorts a copy of events; ties fall back to date
func sortEvents(events []*event.Event, order SortOrder) []*event.Event {
	sorted := make([]*event.Event, len(events))
	copy(sorted, events)

	switch order {
	case SortByWorkshop:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Workshop != sorted[j].Workshop {
				return strings.ToLower(sorted[i].Workshop) < strings.ToLower(sorted[j].Workshop)
			}
			return sorted[i].Date.Before(sorted[j].Date)
		})
	case SortBySource:
		rank := make(map[string]int)
		for i, name := range scraper.SourceNames {
			rank[name] = i
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Source != sorted[j].Source {
				return rank[sorted[i].Source] < rank[sorted[j].Source]
			}
			return sorted[i].Date.Before(sorted[j].Date)
		})
	default:
		event.SortByDate(sorted)
	}
	return sorted
}
