package job

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Loader struct {
	jobsDir string
}

func NewLoader(jobsDir string) *Loader {
	return &Loader{jobsDir: jobsDir}
}

// LoadAll loads every *.yml job definition from the jobs directory,
// sorted by name so runs process jobs in a stable order.
func (l *Loader) LoadAll() ([]*Config, error) {
	if _, err := os.Stat(l.jobsDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.jobsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	sort.Strings(files)

	var configs []*Config
	for _, file := range files {
		jobName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := l.Load(jobName)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Job definition loaded", "job", jobName, "enabled", config.Settings.Enabled, "schema", config.Schema, "rule", config.Rule.Name)
		configs = append(configs, config)
	}

	return configs, nil
}

func (l *Loader) Load(jobName string) (*Config, error) {
	configFile := filepath.Join(l.jobsDir, jobName+".yml")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Name = jobName
	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid job %s: %w", configFile, err)
	}

	return &config, nil
}

func (l *Loader) setDefaults(config *Config) {
	if config.Feed.Owner == "" {
		config.Feed.Owner = "include"
	}
	if config.Feed.Count == 0 {
		config.Feed.Count = 40
	}
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = 30
	}
	if config.Rule.Name == "whale" && len(config.Rule.Codes) == 0 {
		config.Rule.Codes = []string{"P", "S"}
	}
}

func (l *Loader) validate(config *Config) error {
	if config.Name == "" {
		return fmt.Errorf("job name is required")
	}

	validSchemas := map[string]bool{
		"form4":   true,
		"form144": true,
		"sc13":    true,
		"text":    true,
	}
	if !validSchemas[config.Schema] {
		return fmt.Errorf("invalid schema: %s", config.Schema)
	}

	validRules := map[string]bool{
		"whale":         true,
		"proposed_sale": true,
		"stake":         true,
		"event":         true,
	}
	if !validRules[config.Rule.Name] {
		return fmt.Errorf("invalid rule: %s", config.Rule.Name)
	}

	validOwners := map[string]bool{
		"only":    true,
		"include": true,
	}
	if !validOwners[config.Feed.Owner] {
		return fmt.Errorf("invalid feed owner scope: %s", config.Feed.Owner)
	}

	if config.Feed.Count < 0 {
		return fmt.Errorf("feed count must be non-negative")
	}
	if config.Rule.MinValue < 0 {
		return fmt.Errorf("rule min_value must be non-negative")
	}
	if config.Settings.WindowMinutes < 0 {
		return fmt.Errorf("window_minutes must be non-negative")
	}
	if config.Settings.MaxAlerts < 0 {
		return fmt.Errorf("max_alerts must be non-negative")
	}
	if config.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}
