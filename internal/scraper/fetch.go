package scraper

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/logger"
	"github.com/keiikegami/cirje-seminar-tracker/internal/textnorm"
)

const (
	UserAgent = "cirje-seminars/1.0 (github.com/keiikegami/cirje-seminar-tracker)"
	Timeout   = 30 * time.Second

	maxPageSize = 8 << 20
)

// Fetcher retrieves a page and returns its decoded text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages over HTTP and decodes them with the
// UTF-8 / EUC-JP / Shift_JIS fallback chain
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates an HTTPFetcher with a per-request timeout.
// Zero values select Timeout and UserAgent.
func NewFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = Timeout
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout, Transport: tr},
		userAgent: userAgent,
	}
}

// Fetch performs a GET request and decodes the body
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	text, enc := textnorm.Decode(body)
	logger.Debug("page decoded", logger.Fields{
		"url":      url,
		"bytes":    len(body),
		"encoding": enc,
	})
	return text, nil
}
