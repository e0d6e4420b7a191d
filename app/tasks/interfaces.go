package tasks

import (
	"context"

	"github.com/imakhov/edgar-comb/app/feed"
	"github.com/imakhov/edgar-comb/app/notify"
	"github.com/imakhov/edgar-comb/app/summarize"
)

// EntryFetcher lists current entries for a feed query.
type EntryFetcher interface {
	Fetch(ctx context.Context, query feed.Query) ([]feed.Entry, error)
}

// DocumentClient retrieves one filing document.
type DocumentClient interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// Store is the dedup state the task consults and updates.
type Store interface {
	IsKnown(id string) bool
	MarkKnown(id string) error
}

// AlertPublisher delivers one alert.
type AlertPublisher interface {
	Publish(ctx context.Context, alert notify.Alert) (notify.Receipt, error)
}

// Summarizer digests filing text for event jobs.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*summarize.Result, error)
}
