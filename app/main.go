package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imakhov/edgar-comb/app/cfg"
	"github.com/imakhov/edgar-comb/app/database"
	"github.com/imakhov/edgar-comb/app/feed"
	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/fingerprint"
	"github.com/imakhov/edgar-comb/app/job"
	"github.com/imakhov/edgar-comb/app/notify"
	"github.com/imakhov/edgar-comb/app/rules"
	"github.com/imakhov/edgar-comb/app/sheet"
	"github.com/imakhov/edgar-comb/app/summarize"
	"github.com/imakhov/edgar-comb/app/tasks"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting EDGAR Comb", "version", appCfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg); err != nil {
		// A run failure is retried by the next scheduled invocation; exit
		// clean so the scheduler does not escalate.
		slog.Error("Run finished with errors", "error", err)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg) error {
	db, err := database.Connect(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	loader := job.NewLoader(appCfg.JobsDir)
	jobConfigs, err := loader.LoadAll()
	if err != nil {
		slog.Error("Failed to load job definitions", "dir", appCfg.JobsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Job definitions loaded", "count", len(jobConfigs))

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Dedup state: the local file is the durable source of truth, the
	// database and the spreadsheet are mirrors.
	backends := []fingerprint.Backend{database.NewFingerprintRepository(db)}
	var ledger *sheet.Client
	if appCfg.SheetURL != "" {
		ledger = sheet.NewClient(appCfg.SheetURL, appCfg.SheetToken)
		backends = append(backends, fingerprint.NewSheetBackend(ledger))
	}
	store := fingerprint.NewStore(fingerprint.NewFileBackend(appCfg.FingerprintFile), backends...)
	store.LoadRecent(appCfg.FingerprintLimit)
	slog.Info("Fingerprints loaded", "count", store.Size())

	watchlistSet := watchlist.NewSet()
	if appCfg.WatchlistURL != "" {
		provider := watchlist.NewProvider(httpClient, appCfg.WatchlistURL, appCfg.UserAgent)
		watchlistSet, err = provider.Fetch(ctx)
		if err != nil {
			slog.Warn("Watchlist unavailable, filters fail open", "error", err)
		}
	}

	telegram := notify.NewTelegram(appCfg.TelegramBotToken)
	publisher := notify.NewPublisher(telegram, appCfg.TelegramChatID, appCfg.TelegramHeartbeatChatID).
		WithAlertRepository(database.NewAlertRepository(db))
	if appCfg.ChartURL != "" {
		publisher = publisher.WithChart(notify.NewChartFetcher(appCfg.ChartURL))
	}
	if ledger != nil {
		publisher = publisher.WithSheet(ledger)
	}
	if appCfg.SMTPServer != "" {
		publisher = publisher.WithEmail(notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: appCfg.SMTPServer,
			SMTPPort:   appCfg.SMTPPort,
			SMTPUser:   appCfg.SMTPUser,
			SMTPPass:   appCfg.SMTPPass,
			FromEmail:  appCfg.FromEmail,
			ToEmail:    appCfg.ToEmail,
		}))
	}

	var summarizer *summarize.Summarizer
	if appCfg.GeminiAPIKey != "" {
		summarizer, err = summarize.NewSummarizer(ctx, appCfg.GeminiAPIKey, appCfg.GeminiModel)
		if err != nil {
			slog.Warn("Summarizer unavailable, event digests disabled", "error", err)
		}
	}

	if err := publisher.Heartbeat(ctx, time.Now()); err != nil {
		slog.Warn("Failed to send heartbeat", "error", err)
	}

	fetcher := feed.NewFetcher(httpClient, "", appCfg.UserAgent)
	documents := filing.NewClient(httpClient, appCfg.UserAgent)
	delay := time.Duration(appCfg.RequestDelayMS) * time.Millisecond
	retry := summarize.NewRetry(3, 30*time.Second)

	var failedJobs int
	for _, jobConfig := range jobConfigs {
		task, err := buildTask(jobConfig, appCfg, fetcher, documents, watchlistSet, store, publisher, summarizer, retry, delay)
		if err != nil {
			slog.Error("Failed to build job", "job", jobConfig.Name, "error", err)
			failedJobs++
			continue
		}

		task.Start()
		if err := task.Execute(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Job failed", "job", jobConfig.Name, "error", err)
			failedJobs++
		}
	}

	if failedJobs > 0 {
		slog.Warn("Run finished with failed jobs", "failed", failedJobs, "total", len(jobConfigs))
	} else {
		slog.Info("Run finished", "jobs", len(jobConfigs))
	}
	return nil
}

func buildTask(jobConfig *job.Config, appCfg *cfg.Cfg, fetcher *feed.Fetcher, documents *filing.Client,
	set watchlist.Set, store *fingerprint.Store, publisher *notify.Publisher,
	summarizer *summarize.Summarizer, retry *summarize.Retry, delay time.Duration) (*tasks.ReconcileTask, error) {

	extractor, err := filing.ExtractorFor(jobConfig.Schema)
	if err != nil {
		return nil, err
	}

	if jobConfig.Settings.WindowMinutes == 0 {
		jobConfig.Settings.WindowMinutes = appCfg.WindowMinutes
	}
	if jobConfig.Settings.MaxAlerts == 0 {
		jobConfig.Settings.MaxAlerts = appCfg.MaxAlertsPerRun
	}

	strict := appCfg.StrictWatchlist
	if jobConfig.Rule.StrictWatchlist != nil {
		strict = *jobConfig.Rule.StrictWatchlist
	}
	minValue := jobConfig.Rule.MinValue
	if minValue == 0 {
		minValue = appCfg.MinAlertValue
	}

	rule, err := rules.RuleFor(jobConfig.Rule.Name, rules.Settings{
		MinValue:        minValue,
		StrictWatchlist: strict,
		Codes:           jobConfig.Rule.Codes,
	})
	if err != nil {
		return nil, err
	}

	var taskSummarizer tasks.Summarizer
	if summarizer != nil {
		taskSummarizer = summarizer
	}

	return tasks.NewReconcileTask(jobConfig, fetcher, documents, extractor, rule, set,
		store, publisher, taskSummarizer, retry, delay), nil
}
