package database

import (
	"time"
)

// Alert is one published alert record.
type Alert struct {
	ID          int64
	Fingerprint string
	JobName     string
	RuleName    string
	Issuer      string
	Ticker      string
	Value       float64
	Link        string
	MessageID   int64
	CreatedAt   time.Time
}

type FingerprintRepository interface {
	Append(fingerprint string) error
	Recent(limit int) ([]string, error)
}

type AlertRepository interface {
	Append(alert Alert) error
	Recent(limit int) ([]Alert, error)
}
