package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		TelegramBotToken: "123:abc",
		TelegramChatID:   "-1000",
		GeminiModel:      "gemini-2.0-flash",
		JobsDir:          "./jobs",
		DBPath:           "./edgar-comb.db",
		FingerprintFile:  "./fingerprints.log",
		FingerprintLimit: 300,
		MinAlertValue:    500000,
		WindowMinutes:    5,
		MaxAlertsPerRun:  3,
		RequestDelayMS:   1500,
		UserAgent:        "test-agent",
		Timezone:         "UTC",
		Debug:            true,
	}

	if cfg.TelegramBotToken != "123:abc" {
		t.Errorf("Expected bot token '123:abc', got '%s'", cfg.TelegramBotToken)
	}
	if cfg.TelegramChatID != "-1000" {
		t.Errorf("Expected chat ID '-1000', got '%s'", cfg.TelegramChatID)
	}
	if cfg.FingerprintLimit != 300 {
		t.Errorf("Expected fingerprint limit 300, got %d", cfg.FingerprintLimit)
	}
	if cfg.MinAlertValue != 500000 {
		t.Errorf("Expected min alert value 500000, got %f", cfg.MinAlertValue)
	}
	if cfg.WindowMinutes != 5 {
		t.Errorf("Expected window minutes 5, got %d", cfg.WindowMinutes)
	}
	if cfg.MaxAlertsPerRun != 3 {
		t.Errorf("Expected max alerts per run 3, got %d", cfg.MaxAlertsPerRun)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected no error for UTC, got: %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be a no-op, got: %v", err)
	}
}
