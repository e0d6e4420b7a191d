package filing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrDocumentUnavailable marks a per-entry document fetch failure. The entry
// is skipped and the run continues with the next candidate.
var ErrDocumentUnavailable = errors.New("filing document unavailable")

// maxDocumentBytes caps how much of a document is read. Relevant fields sit
// at the front of these filings by construction.
const maxDocumentBytes = 1 << 20

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// DocumentURL derives the raw document URL from a feed entry's index link.
func DocumentURL(indexURL string) string {
	return strings.Replace(indexURL, "-index.htm", ".txt", 1)
}

// FetchDocument retrieves a filing document, reading at most maxDocumentBytes.
func (c *Client) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrDocumentUnavailable, resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}

	return data, nil
}
