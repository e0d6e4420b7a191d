package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// Provider fetches the index constituents table and turns its first column
// into a symbol Set. Any failure yields an empty Set so callers fail open;
// an unavailable watchlist must never look like "nothing qualifies".
type Provider struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

func NewProvider(httpClient *http.Client, url, userAgent string) *Provider {
	return &Provider{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
	}
}

// Fetch returns the current watchlist. The error is informational; the
// returned Set is always usable and empty on failure.
func (p *Provider) Fetch(ctx context.Context) (Set, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.url, nil)
	if err != nil {
		return NewSet(), fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return NewSet(), fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewSet(), fmt.Errorf("watchlist fetch returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return NewSet(), fmt.Errorf("failed to parse watchlist HTML: %w", err)
	}

	set := ParseConstituents(doc)
	slog.Debug("Watchlist fetched", "symbols", len(set))
	return set, nil
}

// ParseConstituents walks the document for the constituents table and
// collects the first cell of each body row.
func ParseConstituents(doc *html.Node) Set {
	set := NewSet()

	table := findConstituentsTable(doc)
	if table == nil {
		return set
	}

	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if symbol := firstCellText(n); symbol != "" {
				set.Add(symbol)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)

	return set
}

func findConstituentsTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == "constituents" {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if table := findConstituentsTable(c); table != nil {
			return table
		}
	}
	return nil
}

// firstCellText returns the text of the row's first td, empty for header rows.
func firstCellText(tr *html.Node) string {
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == "th" {
			return ""
		}
		if c.Data == "td" {
			return strings.TrimSpace(extractText(c))
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}
