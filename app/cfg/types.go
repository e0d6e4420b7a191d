package cfg

type Cfg struct {
	// Telegram channel configuration
	TelegramBotToken        string
	TelegramChatID          string
	TelegramHeartbeatChatID string

	// Summarization service configuration
	GeminiAPIKey string
	GeminiModel  string

	// Spreadsheet ledger configuration (optional)
	SheetURL   string
	SheetToken string

	// Email mirror configuration (optional)
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string

	// Application configuration
	JobsDir          string
	DBPath           string
	FingerprintFile  string
	FingerprintLimit int
	WatchlistURL     string
	ChartURL         string

	// Classification defaults (overridable per job)
	MinAlertValue   float64
	StrictWatchlist bool
	WindowMinutes   int
	MaxAlertsPerRun int
	RequestDelayMS  int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
