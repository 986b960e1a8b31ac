package textnorm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements whose text is never visible on the page.
var invisible = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// parenthetical matches a half-width or full-width parenthesized group.
var parenthetical = regexp.MustCompile(`[（(].*?[）)]`)

// ToLines parses markup and returns its visible text as trimmed, non-empty lines.
// Every text node starts a new line, so a label and its value in separate
// elements end up on separate lines.
func ToLines(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return SelectionLines(doc.Selection), nil
}

// SelectionLines flattens the text below every node of sel into lines.
func SelectionLines(sel *goquery.Selection) []string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return SplitLines(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte('\n')
		return
	case html.ElementNode:
		if invisible[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

// SplitLines splits text on newlines, trims each line and drops blank ones.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// StripWeekday removes parenthesized annotations from a date string.
// When the date precedes the first parenthetical, anything after it
// (typically a time range) is dropped as well:
//
//	"July 10 (Thu) 10:25-12:10" -> "July 10"
//	"2025年7月10日（木）"          -> "2025年7月10日"
func StripWeekday(s string) string {
	loc := parenthetical.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	if head := strings.TrimSpace(s[:loc[0]]); head != "" {
		return head
	}
	return strings.TrimSpace(parenthetical.ReplaceAllString(s, ""))
}

// TrimQuotes removes surrounding straight and curly double quotes.
func TrimQuotes(s string) string {
	return strings.Trim(s, "“”\"")
}
