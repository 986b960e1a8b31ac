package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
)

func newMicroServer(t *testing.T, details map[string]string) (*httptest.Server, *sync.Map) {
	t.Helper()
	hits := &sync.Map{}
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Store(r.URL.Path, true)
		if r.URL.Path == "/events/list/" {
			fmt.Fprintf(w, microListPage, srv.URL)
			return
		}
		page, ok := details[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func microSource(t *testing.T, listURL string) Extractor {
	t.Helper()
	sources := Sources(NewFetcher(5*time.Second, ""), map[string]Override{
		SourceMacro:     {Disabled: true},
		SourceUrban:     {Disabled: true},
		SourceStats:     {Disabled: true},
		SourceEmpirical: {Disabled: true},
		SourceMicro:     {URL: listURL},
	})
	if len(sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(sources))
	}
	return sources[0]
}

func TestDetailSource_Extract(t *testing.T) {
	srv, hits := newMicroServer(t, map[string]string{
		"/event/a/":             microDetailA,
		"/event/b/":             microDetailB,
		"/events/list/event/c/": microDetailC,
	})

	got, err := microSource(t, srv.URL+"/events/list/").Extract(context.Background(), testToday)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	assertEvents(t, got, "Micro Theory WS", []want{
		{day(2025, time.October, 3), "Jane Doe (Stanford), Mechanism Design with Transfers"},
		{day(2025, time.October, 17), event.TBA},
	})

	if _, ok := hits.Load("/event/past/"); ok {
		t.Error("past entry detail page should not be fetched")
	}
	if _, ok := hits.Load("/event/nodate/"); ok {
		t.Error("entry without a date should not be fetched")
	}
	if _, ok := hits.Load("/event/b/"); !ok {
		t.Error("absolute detail link was not fetched")
	}
}

func TestDetailSource_DetailFetchFails(t *testing.T) {
	srv, _ := newMicroServer(t, map[string]string{
		"/event/a/": microDetailA,
		// /event/b/ answers 404
		"/events/list/event/c/": microDetailC,
	})

	_, err := microSource(t, srv.URL+"/events/list/").Extract(context.Background(), testToday)
	if err == nil {
		t.Fatal("Expected error when a detail page fails")
	}
}

func TestDetailSource_ParseDetail(t *testing.T) {
	s := &DetailSource{
		Marker:      "Microeconomic Theory Workshop",
		TitleLabels: []string{"title:", "title：", "タイトル:", "タイトル："},
	}

	tests := []struct {
		name        string
		lines       []string
		wantSpeaker string
		wantTitle   string
		wantOK      bool
	}{
		{
			name:        "english labels",
			lines:       []string{"Jane Doe (Stanford) Microeconomic Theory Workshop", "Title: Matching"},
			wantSpeaker: "Jane Doe (Stanford)",
			wantTitle:   "Matching",
			wantOK:      true,
		},
		{
			name:        "full-width colon",
			lines:       []string{"山田太郎　Microeconomic Theory Workshop", "タイトル：ゲーム理論"},
			wantSpeaker: "山田太郎",
			wantTitle:   "ゲーム理論",
			wantOK:      true,
		},
		{
			name:        "upper-case label",
			lines:       []string{"TITLE: Auctions", "A. Person Microeconomic Theory Workshop"},
			wantSpeaker: "A. Person",
			wantTitle:   "Auctions",
			wantOK:      true,
		},
		{
			name:   "missing title",
			lines:  []string{"Jane Doe Microeconomic Theory Workshop"},
			wantOK: false,
		},
		{
			name:   "missing marker",
			lines:  []string{"Jane Doe", "Title: Matching"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker, title, ok := s.parseDetail(tt.lines)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if speaker != tt.wantSpeaker || title != tt.wantTitle {
				t.Errorf("parseDetail() = (%q, %q), want (%q, %q)", speaker, title, tt.wantSpeaker, tt.wantTitle)
			}
		})
	}
}
