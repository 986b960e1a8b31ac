// Package calendar renders upcoming events as an iCalendar feed that
// calendar clients can subscribe to alongside the HTML page.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
)

const (
	ProductID = "-//CIRJE Seminars//cirje-seminars//EN"
	uidDomain = "cirje-seminars"
)

// ErrNoEvents is returned by Feed for an empty event list. A calendar object
// must hold at least one component.
var ErrNoEvents = errors.New("no events to publish")

// Feed renders a VCALENDAR with one all-day VEVENT per event.
// generated becomes the DTSTAMP of every entry.
func Feed(events []*event.Event, generated time.Time) (string, error) {
	if len(events) == 0 {
		return "", ErrNoEvents
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	for _, e := range events {
		cal.Children = append(cal.Children, newEvent(e, generated).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encoding calendar: %w", err)
	}
	return buf.String(), nil
}

// UID returns the iCalendar UID of an event
func UID(e *event.Event) string {
	return event.GenerateID(e) + "@" + uidDomain
}

func newEvent(e *event.Event, generated time.Time) *ical.Event {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, UID(e))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, generated.UTC())
	vevent.Props.SetDate(ical.PropDateTimeStart, e.Date)
	vevent.Props.SetDate(ical.PropDateTimeEnd, e.Date.AddDate(0, 0, 1))
	vevent.Props.SetText(ical.PropSummary, e.Workshop)
	vevent.Props.SetText(ical.PropDescription, e.Info)
	vevent.Props.SetText(ical.PropTransparency, "TRANSPARENT")
	return vevent
}
