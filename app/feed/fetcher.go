package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"
)

const DefaultBaseURL = "https://www.sec.gov/cgi-bin/browse-edgar"

// ErrTransient marks a network or HTTP failure against the feed endpoint.
// The run aborts cleanly and the next scheduled invocation retries.
var ErrTransient = errors.New("transient feed fetch failure")

type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	baseURL      string
	userAgent    string
}

func NewFetcher(httpClient *http.Client, baseURL, userAgent string) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		baseURL:      baseURL,
		userAgent:    userAgent,
	}
}

// Fetch retrieves the current-events feed slice selected by the query and
// normalizes it into entries. Entries without a parseable updated timestamp
// are skipped, not fatal.
func (f *Fetcher) Fetch(ctx context.Context, query Query) ([]Entry, error) {
	data, err := f.fetchFeed(ctx, f.buildURL(query))
	if err != nil {
		return nil, err
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		if item.UpdatedParsed == nil && item.PublishedParsed == nil {
			slog.Warn("Skipping entry with unparseable timestamp", "link", item.Link)
			continue
		}

		updated := item.UpdatedParsed
		if updated == nil {
			updated = item.PublishedParsed
		}

		entry := Entry{
			ID:        item.Link,
			Title:     item.Title,
			UpdatedAt: updated.UTC(),
		}
		if len(item.Categories) > 0 {
			entry.Category = item.Categories[0]
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (f *Fetcher) buildURL(query Query) string {
	params := url.Values{}
	params.Set("action", "getcurrent")
	if query.FormType != "" {
		params.Set("type", query.FormType)
	}
	params.Set("owner", query.Owner)
	params.Set("count", strconv.Itoa(query.Count))
	params.Set("output", "atom")
	return f.baseURL + "?" + params.Encode()
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d %s", ErrTransient, resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return data, nil
}

// ApplyWindow drops entries older than now-window. The feed is only
// approximately recent-first, so stale entries are skipped individually
// rather than terminating the scan on the first one.
func ApplyWindow(entries []Entry, now time.Time, window time.Duration) []Entry {
	cutoff := now.Add(-window)

	recent := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.UpdatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, entry)
	}
	return recent
}
