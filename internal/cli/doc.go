// Package cli implements the command-line interface for cirje-seminars.
//
// The root command fetches every enabled workshop page, merges the upcoming
// events and writes the HTML page, JSON feed and iCalendar feed. With --debug
// it prints per-source counts and the extracted records instead of writing
// files.
package cli
