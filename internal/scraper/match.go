package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matcher reports whether a text line carries a label or marker
type Matcher func(line string) bool

// Prefix matches lines starting with label.
func Prefix(label string) Matcher {
	return func(line string) bool {
		return strings.HasPrefix(line, label)
	}
}

// PrefixFold matches lines starting with label, ignoring case.
func PrefixFold(label string) Matcher {
	label = strings.ToLower(label)
	return func(line string) bool {
		return strings.HasPrefix(strings.ToLower(line), label)
	}
}

// ContainsFold matches lines containing s anywhere, ignoring case.
func ContainsFold(s string) Matcher {
	s = strings.ToLower(s)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), s)
	}
}

// Pattern matches lines in which the regular expression finds a match.
// It panics if expr does not compile.
func Pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// Any matches when at least one of ms matches.
func Any(ms ...Matcher) Matcher {
	return func(line string) bool {
		return matchAny(ms, line)
	}
}

func matchAny(ms []Matcher, line string) bool {
	for _, m := range ms {
		if m != nil && m(line) {
			return true
		}
	}
	return false
}

// labelValue returns the text after the first half-width or full-width colon
// of a label line, or "" for a bare label.
func labelValue(line string) string {
	i := strings.IndexAny(line, ":：")
	if i < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return strings.TrimSpace(line[i+size:])
}
