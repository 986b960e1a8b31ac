package scraper

const (
	MacroURL     = "https://www.cirje.e.u-tokyo.ac.jp/research/workshops/macro/macro.html"
	UrbanURL     = "https://www.cirje.e.u-tokyo.ac.jp/research/workshops/urban/urban.html"
	StatsURL     = "https://www.cirje.e.u-tokyo.ac.jp/research/workshops/stateng/stateng.html"
	EmpiricalURL = "https://www.cirje.e.u-tokyo.ac.jp/research/workshops/emf/emf.html"
	MicroURL     = "https://www.computer-services.e.u-tokyo.ac.jp/wp/events/list/" +
		"?tribe_eventcategory%5B0%5D=7&tribe_eventcategory%5B1%5D=8"
)

// Source keys
const (
	SourceMacro     = "macro"
	SourceUrban     = "urban"
	SourceStats     = "stats"
	SourceEmpirical = "emf"
	SourceMicro     = "micro"
)

// SourceNames lists the configured sources in execution order.
var SourceNames = []string{SourceMacro, SourceUrban, SourceStats, SourceEmpirical, SourceMicro}

// Override adjusts a configured source. Zero fields keep the default.
type Override struct {
	URL         string
	DefaultYear int
	Disabled    bool
}

var (
	pastSeminars = ContainsFold("past seminars")
	titleLabels  = Any(PrefixFold("title"), Prefix("題目"), Prefix("タイトル"))
)

// Sources returns the workshop extractors in execution order, with overrides
// applied by source key. Disabled sources are left out.
func Sources(f Fetcher, overrides map[string]Override) []Extractor {
	macro := &LineSource{
		Key:          SourceMacro,
		Workshop:     "Macroeconomics WS",
		URL:          MacroURL,
		Fetcher:      f,
		DateLabel:    PrefixFold("date"),
		ContentLabel: PrefixFold("speaker"),
		Terminators: []Matcher{
			PrefixFold("date"),
			PrefixFold("venue"),
			Pattern(`(?i)^abstract`),
		},
		SkipLabels:  []Matcher{titleLabels},
		StopMarkers: []Matcher{pastSeminars},
	}

	urban := &LineSource{
		Key:          SourceUrban,
		Workshop:     "Urban Economics WS",
		URL:          UrbanURL,
		Fetcher:      f,
		DateLabel:    Prefix("日時"),
		ContentLabel: Prefix("報告"),
		Terminators: []Matcher{
			Pattern(`(?i)^(日時|venue|報告|speaker)`),
			Pattern(`(?i)(abstract|要旨)`),
		},
		SkipLabels:  []Matcher{titleLabels},
		StopMarkers: []Matcher{pastSeminars},
	}

	stats := &LineSource{
		Key:          SourceStats,
		Workshop:     "Applied Statistics WS",
		URL:          StatsURL,
		Fetcher:      f,
		DateLabel:    Prefix("日時"),
		ContentLabel: Prefix("報告"),
		Terminators: []Matcher{
			Pattern(`(?i)^(日時|venue|報告|speaker)`),
			Pattern(`(?i)abstract`),
		},
		SkipLabels: []Matcher{titleLabels},
	}

	empirical := &LineSource{
		Key:          SourceEmpirical,
		Workshop:     "Empirical Micro WS",
		URL:          EmpiricalURL,
		Fetcher:      f,
		DateLabel:    Pattern(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2}`),
		DateInline:   true,
		CarryDate:    true,
		ContentLabel: Pattern(`(?i)speaker\s*(?:&|and)\s*title`),
		Terminators: []Matcher{
			Pattern(`(?i)^(date|venue|speaker)`),
			Pattern(`(?i)abstract`),
		},
		StopMarkers: []Matcher{pastSeminars, ContainsFold("以下本年度終了分")},
	}

	micro := &DetailSource{
		Key:           SourceMicro,
		Workshop:      "Micro Theory WS",
		URL:           MicroURL,
		Fetcher:       f,
		EventSelector: "div.tribe-events-calendar-list__event-wrapper",
		LinkSelector:  "a.tribe-events-calendar-list__event-title-link",
		Marker:        "Microeconomic Theory Workshop",
		TitleLabels:   []string{"title:", "title：", "タイトル:", "タイトル："},
	}

	all := []Extractor{macro, urban, stats, empirical, micro}

	out := make([]Extractor, 0, len(all))
	for _, ex := range all {
		o, ok := overrides[ex.Name()]
		if ok && o.Disabled {
			continue
		}
		if ok {
			applyOverride(ex, o)
		}
		out = append(out, ex)
	}
	return out
}

func applyOverride(ex Extractor, o Override) {
	switch s := ex.(type) {
	case *LineSource:
		if o.URL != "" {
			s.URL = o.URL
		}
		if o.DefaultYear != 0 {
			s.DefaultYear = o.DefaultYear
		}
	case *DetailSource:
		if o.URL != "" {
			s.URL = o.URL
		}
	}
}
