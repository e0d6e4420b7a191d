package job

import (
	"os"
	"path/filepath"
	"testing"
)

func writeJobFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write job file: %v", err)
	}
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()

	writeJobFile(t, dir, "whale.yml", `
feed:
  form_type: "4"
  owner: only
  count: 40
schema: form4
rule:
  name: whale
  min_value: 500000
settings:
  enabled: true
  window_minutes: 5
  max_alerts: 3
`)
	writeJobFile(t, dir, "form144.yml", `
feed:
  form_type: "144"
schema: form144
rule:
  name: proposed_sale
  min_value: 1000000
settings:
  enabled: true
`)

	loader := NewLoader(dir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}

	// Sorted by filename: form144 before whale
	if configs[0].Name != "form144" {
		t.Errorf("Expected first job 'form144', got '%s'", configs[0].Name)
	}
	if configs[1].Name != "whale" {
		t.Errorf("Expected second job 'whale', got '%s'", configs[1].Name)
	}

	whale := configs[1]
	if whale.Feed.FormType != "4" {
		t.Errorf("Expected form type '4', got '%s'", whale.Feed.FormType)
	}
	if whale.Rule.MinValue != 500000 {
		t.Errorf("Expected min value 500000, got %f", whale.Rule.MinValue)
	}
	if len(whale.Rule.Codes) != 2 || whale.Rule.Codes[0] != "P" || whale.Rule.Codes[1] != "S" {
		t.Errorf("Expected default codes [P S], got %v", whale.Rule.Codes)
	}

	form144 := configs[0]
	if form144.Feed.Owner != "include" {
		t.Errorf("Expected default owner 'include', got '%s'", form144.Feed.Owner)
	}
	if form144.Feed.Count != 40 {
		t.Errorf("Expected default count 40, got %d", form144.Feed.Count)
	}
	if form144.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", form144.Settings.Timeout)
	}
}

func TestLoader_LoadAllMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope"))
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Expected no error for missing dir, got: %v", err)
	}
	if len(configs) != 0 {
		t.Errorf("Expected 0 configs, got %d", len(configs))
	}
}

func TestLoader_InvalidSchema(t *testing.T) {
	dir := t.TempDir()
	writeJobFile(t, dir, "bad.yml", `
schema: form13
rule:
  name: whale
settings:
  enabled: true
`)

	loader := NewLoader(dir)
	if _, err := loader.LoadAll(); err == nil {
		t.Error("Expected error for invalid schema")
	}
}

func TestLoader_InvalidRule(t *testing.T) {
	dir := t.TempDir()
	writeJobFile(t, dir, "bad.yml", `
schema: form4
rule:
  name: moonshot
settings:
  enabled: true
`)

	loader := NewLoader(dir)
	if _, err := loader.LoadAll(); err == nil {
		t.Error("Expected error for invalid rule")
	}
}

func TestLoader_StrictWatchlistInheritance(t *testing.T) {
	dir := t.TempDir()
	writeJobFile(t, dir, "strict.yml", `
schema: form144
rule:
  name: proposed_sale
  strict_watchlist: true
settings:
  enabled: true
`)
	writeJobFile(t, dir, "inherit.yml", `
schema: form4
rule:
  name: whale
settings:
  enabled: true
`)

	loader := NewLoader(dir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, c := range configs {
		switch c.Name {
		case "strict":
			if c.Rule.StrictWatchlist == nil || !*c.Rule.StrictWatchlist {
				t.Error("Expected strict_watchlist true")
			}
		case "inherit":
			if c.Rule.StrictWatchlist != nil {
				t.Error("Expected strict_watchlist nil for inheritance")
			}
		}
	}
}
