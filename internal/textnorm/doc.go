// Package textnorm turns raw seminar pages into the line-oriented text view
// the extractors scan.
//
// Department pages are served in a mix of UTF-8, EUC-JP and Shift_JIS, so
// Decode tries each candidate in turn. ToLines flattens markup into trimmed,
// non-empty visible text lines, and StripWeekday removes the weekday and time
// annotations that follow a date token.
package textnorm
