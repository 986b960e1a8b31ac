// Package storage writes the published artifacts of a run.
//
// Artifacts are written below a root directory: the HTML page to
// docs/index.html, the JSON feed to events.json and the iCalendar feed to
// docs/events.ics by default. The root may start with ~/ for the home
// directory.
package storage
