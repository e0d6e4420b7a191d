package database

import (
	"fmt"
)

// SQLAlertRepository keeps the local copy of the alert ledger.
type SQLAlertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) *SQLAlertRepository {
	return &SQLAlertRepository{db: db}
}

func (r *SQLAlertRepository) Append(alert Alert) error {
	_, err := r.db.Exec(`
		INSERT INTO alerts (fingerprint, job_name, rule_name, issuer, ticker, value, link, message_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, alert.Fingerprint, alert.JobName, alert.RuleName, alert.Issuer, alert.Ticker, alert.Value, alert.Link, alert.MessageID)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// Recent returns up to limit alerts, newest first.
func (r *SQLAlertRepository) Recent(limit int) ([]Alert, error) {
	rows, err := r.db.Query(`
		SELECT id, fingerprint, job_name, rule_name, issuer, ticker, value, link, message_id, created_at
		FROM alerts
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		err := rows.Scan(&a.ID, &a.Fingerprint, &a.JobName, &a.RuleName, &a.Issuer, &a.Ticker, &a.Value, &a.Link, &a.MessageID, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}
