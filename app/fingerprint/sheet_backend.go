package fingerprint

import (
	"context"
	"time"
)

// LedgerClient is the slice of the spreadsheet client this backend needs.
type LedgerClient interface {
	AppendRow(ctx context.Context, values []string) error
	Column(ctx context.Context, name string, limit int) ([]string, error)
}

// SheetBackend mirrors fingerprints into the spreadsheet ledger so a wiped
// local state can be re-seeded from it.
type SheetBackend struct {
	client LedgerClient
}

func NewSheetBackend(client LedgerClient) *SheetBackend {
	return &SheetBackend{client: client}
}

func (b *SheetBackend) Append(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return b.client.AppendRow(ctx, []string{id, time.Now().UTC().Format(time.RFC3339)})
}

func (b *SheetBackend) Recent(limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return b.client.Column(ctx, "fingerprint", limit)
}
