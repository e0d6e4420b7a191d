package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxChartBytes = 5 << 20

// ChartFetcher downloads a price chart image for a ticker from a provider
// URL template containing a {ticker} placeholder.
type ChartFetcher struct {
	httpClient *http.Client
	template   string
}

func NewChartFetcher(template string) *ChartFetcher {
	return &ChartFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		template:   template,
	}
}

func (f *ChartFetcher) Fetch(ctx context.Context, ticker string) ([]byte, error) {
	chartURL := strings.ReplaceAll(f.template, "{ticker}", ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, chartURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart provider returned HTTP %d", resp.StatusCode)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxChartBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read chart: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("chart provider returned an empty image")
	}
	return img, nil
}
