// Package event provides the seminar event record and the date resolver
// shared by every extractor.
//
// Resolve turns loosely formatted English or Japanese date text into a
// calendar date and applies the academic-year rollover: a January–March date
// that falls before the reference day is moved into the following year.
package event
