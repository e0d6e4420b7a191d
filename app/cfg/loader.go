package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Telegram channel configuration
	TelegramBotToken        string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (required)" required:"true"`
	TelegramChatID          string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID_WHALE" description:"Telegram chat ID for alerts (required)" required:"true"`
	TelegramHeartbeatChatID string `long:"telegram-heartbeat-chat-id" env:"TELEGRAM_CHAT_ID_TEST" description:"Telegram chat ID for heartbeat messages (optional)"`

	// Summarization service configuration
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key (optional, disables summarization when empty)"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.0-flash" description:"Gemini model name"`

	// Spreadsheet ledger configuration
	SheetURL   string `long:"sheet-url" env:"SHEET_URL" description:"Webhook URL of the spreadsheet ledger (optional)"`
	SheetToken string `long:"sheet-token" env:"SHEET_TOKEN" description:"Bearer token for the spreadsheet ledger (optional)"`

	// Email mirror configuration
	SMTPServer string `long:"smtp-server" env:"SMTP_SERVER" description:"SMTP server for the email mirror (optional)"`
	SMTPPort   int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser   string `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPass   string `long:"smtp-pass" env:"SMTP_PASS" description:"SMTP password"`
	FromEmail  string `long:"from-email" env:"FROM_EMAIL" description:"Sender address for the email mirror (default: smtp-user)"`
	ToEmail    string `long:"to-email" env:"TO_EMAIL" description:"Recipient address for the email mirror"`

	// Application configuration
	JobsDir          string `long:"jobs-dir" env:"JOBS_DIR" default:"./jobs" description:"Directory containing job definition files"`
	DBPath           string `long:"db-path" env:"DB_PATH" default:"./edgar-comb.db" description:"Path to the SQLite database file"`
	FingerprintFile  string `long:"fingerprint-file" env:"FINGERPRINT_FILE" default:"./fingerprints.log" description:"Path to the append-only fingerprint file"`
	FingerprintLimit int    `long:"fingerprint-limit" env:"FINGERPRINT_LIMIT" default:"300" description:"Number of recent fingerprints loaded per run"`
	WatchlistURL     string `long:"watchlist-url" env:"WATCHLIST_URL" default:"https://en.wikipedia.org/wiki/List_of_S%26P_500_companies" description:"URL of the watchlist constituents table"`
	ChartURL         string `long:"chart-url" env:"CHART_URL" description:"Chart image URL template with a {ticker} placeholder (optional)"`

	// Classification defaults
	MinAlertValue   float64 `long:"min-alert-value" env:"MIN_ALERT_VALUE" default:"500000" description:"Minimum transaction value in USD for an alert"`
	StrictWatchlist bool    `long:"strict-watchlist" env:"STRICT_WATCHLIST" description:"Alert only on watchlist tickers"`
	WindowMinutes   int     `long:"window-minutes" env:"WINDOW_MINUTES" default:"5" description:"Feed entries older than this window are skipped"`
	MaxAlertsPerRun int     `long:"max-alerts-per-run" env:"MAX_ALERTS_PER_RUN" default:"3" description:"Per-run cap on published alerts"`
	RequestDelayMS  int     `long:"request-delay-ms" env:"REQUEST_DELAY_MS" default:"1500" description:"Delay between consecutive document fetches in milliseconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"edgar-comb/1.0 (ops@example.com)" description:"User agent string for SEC requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		TelegramBotToken:        raw.TelegramBotToken,
		TelegramChatID:          raw.TelegramChatID,
		TelegramHeartbeatChatID: raw.TelegramHeartbeatChatID,
		GeminiAPIKey:            raw.GeminiAPIKey,
		GeminiModel:             raw.GeminiModel,
		SheetURL:                raw.SheetURL,
		SheetToken:              raw.SheetToken,
		SMTPServer:              raw.SMTPServer,
		SMTPPort:                raw.SMTPPort,
		SMTPUser:                raw.SMTPUser,
		SMTPPass:                raw.SMTPPass,
		FromEmail:               cmp.Or(raw.FromEmail, raw.SMTPUser),
		ToEmail:                 raw.ToEmail,
		JobsDir:                 raw.JobsDir,
		DBPath:                  raw.DBPath,
		FingerprintFile:         raw.FingerprintFile,
		FingerprintLimit:        raw.FingerprintLimit,
		WatchlistURL:            raw.WatchlistURL,
		ChartURL:                raw.ChartURL,
		MinAlertValue:           raw.MinAlertValue,
		StrictWatchlist:         raw.StrictWatchlist,
		WindowMinutes:           raw.WindowMinutes,
		MaxAlertsPerRun:         raw.MaxAlertsPerRun,
		RequestDelayMS:          raw.RequestDelayMS,
		UserAgent:               raw.UserAgent,
		Timezone:                raw.Timezone,
		Debug:                   raw.Debug,
		Version:                 GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
