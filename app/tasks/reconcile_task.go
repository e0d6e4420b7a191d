package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imakhov/edgar-comb/app/feed"
	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/job"
	"github.com/imakhov/edgar-comb/app/notify"
	"github.com/imakhov/edgar-comb/app/rules"
	"github.com/imakhov/edgar-comb/app/summarize"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// ReconcileTask runs one job end to end: fetch the feed slice, drop entries
// already seen, extract facts from the new documents, classify them and
// publish whatever is alert-worthy. Publishing happens before the entry is
// marked seen, so a crash re-sends rather than loses an alert.
type ReconcileTask struct {
	Task
	JobConfig *job.Config

	fetcher    EntryFetcher
	documents  DocumentClient
	extractor  filing.Extractor
	rule       rules.Rule
	watchlist  watchlist.Set
	store      Store
	publisher  AlertPublisher
	summarizer Summarizer // nil unless the job summarizes
	retry      *summarize.Retry

	now   func() time.Time
	delay time.Duration
}

func NewReconcileTask(jobConfig *job.Config, fetcher EntryFetcher, documents DocumentClient,
	extractor filing.Extractor, rule rules.Rule, set watchlist.Set, store Store,
	publisher AlertPublisher, summarizer Summarizer, retry *summarize.Retry, delay time.Duration) *ReconcileTask {
	return &ReconcileTask{
		Task:       NewTask(jobConfig.Name),
		JobConfig:  jobConfig,
		fetcher:    fetcher,
		documents:  documents,
		extractor:  extractor,
		rule:       rule,
		watchlist:  set,
		store:      store,
		publisher:  publisher,
		summarizer: summarizer,
		retry:      retry,
		now:        time.Now,
		delay:      delay,
	}
}

func (t *ReconcileTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.JobConfig.Settings.Enabled {
		slog.Debug("Job disabled, skipping", "job", t.JobName)
		return nil
	}

	entries, err := t.fetcher.Fetch(ctx, feed.Query{
		FormType: t.JobConfig.Feed.FormType,
		Owner:    t.JobConfig.Feed.Owner,
		Count:    t.JobConfig.Feed.Count,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	matched := entries[:0:0]
	for _, entry := range entries {
		if entry.MatchesCategory(t.JobConfig.Feed.Categories) {
			matched = append(matched, entry)
		}
	}

	window := time.Duration(t.JobConfig.Settings.WindowMinutes) * time.Minute
	fresh := feed.ApplyWindow(matched, t.now(), window)

	knownCount := 0
	unavailableCount := 0
	examinedCount := 0
	alertCount := 0

	for _, entry := range fresh {
		if alertCount >= t.JobConfig.Settings.MaxAlerts {
			slog.Info("Alert cap reached, deferring remaining entries", "job", t.JobName, "cap", t.JobConfig.Settings.MaxAlerts)
			break
		}

		if t.store.IsKnown(entry.ID) {
			knownCount++
			continue
		}

		if err := t.pause(ctx); err != nil {
			return err
		}

		doc, err := t.fetchDocument(ctx, filing.DocumentURL(entry.ID))
		if err != nil {
			if errors.Is(err, filing.ErrDocumentUnavailable) {
				slog.Warn("Document unavailable, deferring entry", "job", t.JobName, "entry", entry.ID)
			} else {
				slog.Warn("Failed to fetch document, deferring entry", "job", t.JobName, "entry", entry.ID, "error", err)
			}
			unavailableCount++
			continue
		}

		fact := t.extractor.Extract(entry.ID, entry.Title, entry.Category, doc)
		examinedCount++

		if t.summarizer != nil && t.JobConfig.Settings.Summarize {
			if err := t.summarizeFact(ctx, fact); err != nil {
				slog.Warn("Failed to summarize, deferring entry", "job", t.JobName, "entry", entry.ID, "error", err)
				continue
			}
		}

		decision := t.rule.Classify(fact, t.watchlist)
		if !decision.Alert {
			if err := t.store.MarkKnown(entry.ID); err != nil {
				return fmt.Errorf("failed to mark entry seen: %w", err)
			}
			continue
		}

		receipt, err := t.publisher.Publish(ctx, notify.Alert{
			Fingerprint: entry.ID,
			JobName:     t.JobName,
			RuleName:    t.JobConfig.Rule.Name,
			Issuer:      fact.Issuer,
			Ticker:      fact.Ticker,
			Value:       totalValue(decision),
			Message:     decision.Message,
			Link:        entry.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to publish alert: %w", err)
		}

		// Mark only after the channel accepted the message. A crash between
		// the two sends the alert again next run, never drops it.
		if err := t.store.MarkKnown(entry.ID); err != nil {
			return fmt.Errorf("failed to mark entry seen: %w", err)
		}

		alertCount++
		if !receipt.LedgerOK {
			slog.Warn("Alert published but not fully recorded", "job", t.JobName, "entry", entry.ID)
		}
	}

	slog.Info("Task completed",
		"type", "Reconcile",
		"job", t.JobName,
		"duration", t.GetDuration(),
		"total", len(entries),
		"matched", len(matched),
		"fresh", len(fresh),
		"known", knownCount,
		"unavailable", unavailableCount,
		"examined", examinedCount,
		"alerts", alertCount)

	return nil
}

func (t *ReconcileTask) summarizeFact(ctx context.Context, fact *filing.Fact) error {
	do := func() error {
		result, err := t.summarizer.Summarize(ctx, fact.Text)
		if err != nil {
			return err
		}
		fact.Summary = result.Summary
		fact.Sentiment = result.Sentiment
		return nil
	}
	if t.retry == nil {
		return do()
	}
	return t.retry.Do(ctx, do)
}

// fetchDocument bounds each outbound document request by the job's timeout.
func (t *ReconcileTask) fetchDocument(ctx context.Context, url string) ([]byte, error) {
	if t.JobConfig.Settings.Timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.JobConfig.Settings.Timeout)*time.Second)
		defer cancel()
		ctx = timeoutCtx
	}
	return t.documents.FetchDocument(ctx, url)
}

// pause keeps a polite gap between outbound document requests.
func (t *ReconcileTask) pause(ctx context.Context) error {
	if t.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func totalValue(decision rules.Decision) float64 {
	var total float64
	for _, line := range decision.Lines {
		total += line.Value
	}
	return total
}
