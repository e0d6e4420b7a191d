package job

// Config describes one polling job: which feed slice to fetch, how to
// extract facts from the documents, and which rule classifies them.
type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Feed     ConfigFeed     `yaml:"feed"`
	Schema   string         `yaml:"schema"` // form4, form144, sc13, text
	Rule     ConfigRule     `yaml:"rule"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigFeed struct {
	FormType   string   `yaml:"form_type"` // EDGAR type parameter, empty for all filings
	Owner      string   `yaml:"owner"`     // EDGAR owner parameter: only, include
	Count      int      `yaml:"count"`
	Categories []string `yaml:"categories"` // category prefixes the job reacts to, empty for all
}

type ConfigRule struct {
	Name            string   `yaml:"name"` // whale, proposed_sale, stake, event
	MinValue        float64  `yaml:"min_value"`
	StrictWatchlist *bool    `yaml:"strict_watchlist"` // nil inherits the global default
	Codes           []string `yaml:"codes"`            // qualifying transaction codes (form4)
}

type ConfigSettings struct {
	Enabled       bool `yaml:"enabled"`
	WindowMinutes int  `yaml:"window_minutes"`
	MaxAlerts     int  `yaml:"max_alerts"`
	Summarize     bool `yaml:"summarize"`
	Timeout       int  `yaml:"timeout"` // seconds, per outbound document request
}
