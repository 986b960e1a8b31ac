// Package scraper fetches CIRJE workshop pages and extracts upcoming seminar
// events from them.
//
// Each department page has its own loose layout, so extraction is driven by
// data: LineSource is a line-scanning state machine configured with label
// matchers, and DetailSource follows links from an event list to per-event
// detail pages. Sources returns the five configured workshop extractors, and
// Collect runs them with per-source failure isolation and merges the results
// into one date-sorted list.
package scraper
