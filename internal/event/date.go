package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

const monthNames = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	// "2025年7月10日"
	jpFullPattern = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	// "7月10日"
	jpShortPattern = regexp.MustCompile(`(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	// "2025-07-10", "2025/7/10", "2025.7.10"
	isoPattern = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	// "July 10", "Jul. 10th, 2025"
	monthDayPattern = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s*(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`)
	// "10 July", "10th July 2025"
	dayMonthPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNames + `)\b\.?(?:,?\s+(\d{4})\b)?`)
	// "7/10", "7/10/2025"
	slashPattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Resolve parses a loosely formatted date token and applies the academic-year
// rollover against today. defaultYear is used when the token carries no year.
// It returns false when no valid calendar date can be found.
//
// The rollover moves a January–March date that falls before today into the
// next year. It is applied whether or not the year was explicit and only
// approximates an April-start academic year.
func Resolve(raw string, defaultYear int, today time.Time) (time.Time, bool) {
	d, ok := ParseDate(raw, defaultYear)
	if !ok {
		return time.Time{}, false
	}

	if d.Before(Day(today)) && d.Month() <= time.March {
		return makeDate(d.Year()+1, d.Month(), d.Day())
	}
	return d, true
}

// ParseDate finds the first recognizable date in text.
// Supported forms, tried in this order:
//
//	2025年7月10日, 2025-07-10, 7月10日, July 10 [2025], 10 July [2025], 7/10[/2025]
//
// Full-width digits are accepted. A missing year becomes defaultYear.
func ParseDate(text string, defaultYear int) (time.Time, bool) {
	return parseDate(width.Narrow.String(text), defaultYear, true)
}

// HasExplicitDate reports whether text carries a Japanese, ISO or
// month-name date. Bare slash forms are not counted: in a label such as
// "Date & Time: 16:50-18:30, Room 1/2" the "1/2" is not a date.
func HasExplicitDate(text string) bool {
	_, ok := parseDate(width.Narrow.String(text), 2000, false)
	return ok
}

func parseDate(text string, defaultYear int, slash bool) (time.Time, bool) {
	if m := jpFullPattern.FindStringSubmatch(text); m != nil {
		return fromParts(m[1], m[2], m[3], defaultYear)
	}
	if m := isoPattern.FindStringSubmatch(text); m != nil {
		return fromParts(m[1], m[2], m[3], defaultYear)
	}
	if m := jpShortPattern.FindStringSubmatch(text); m != nil {
		return fromParts("", m[1], m[2], defaultYear)
	}
	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		return fromNamedMonth(m[1], m[2], m[3], defaultYear)
	}
	if m := dayMonthPattern.FindStringSubmatch(text); m != nil {
		return fromNamedMonth(m[2], m[1], m[3], defaultYear)
	}
	if m := slashPattern.FindStringSubmatch(text); slash && m != nil {
		return fromParts(m[3], m[1], m[2], defaultYear)
	}
	return time.Time{}, false
}

func fromNamedMonth(name, day, year string, defaultYear int) (time.Time, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	month, ok := months[key]
	if !ok {
		return time.Time{}, false
	}
	return fromParts(year, strconv.Itoa(int(month)), day, defaultYear)
}

func fromParts(year, month, day string, defaultYear int) (time.Time, bool) {
	y := defaultYear
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			return time.Time{}, false
		}
		y = n
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	return makeDate(y, time.Month(m), d)
}

// makeDate rejects dates that time.Date would normalize, such as February 30.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1 || year > 9999 || month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Day returns the calendar date of t as midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AcademicYear returns the starting year of the April-start academic year
// containing t.
func AcademicYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// IsUpcoming reports whether the event is on or after today.
func (e *Event) IsUpcoming(today time.Time) bool {
	return !e.Date.Before(Day(today))
}
