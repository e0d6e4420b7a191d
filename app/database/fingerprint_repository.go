package database

import (
	"fmt"
)

// SQLFingerprintRepository stores filing fingerprints in SQLite. It is the
// secondary dedup backend: reads feed the startup union, writes are
// best-effort on top of the durable file.
type SQLFingerprintRepository struct {
	db *DB
}

func NewFingerprintRepository(db *DB) *SQLFingerprintRepository {
	return &SQLFingerprintRepository{db: db}
}

func (r *SQLFingerprintRepository) Append(fingerprint string) error {
	_, err := r.db.Exec(`
		INSERT INTO fingerprints (fingerprint)
		VALUES (?)
	`, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to insert fingerprint: %w", err)
	}
	return nil
}

// Recent returns up to limit fingerprints, newest first.
func (r *SQLFingerprintRepository) Recent(limit int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT fingerprint
		FROM fingerprints
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", err)
	}
	defer rows.Close()

	var fingerprints []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		fingerprints = append(fingerprints, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fingerprints: %w", err)
	}

	return fingerprints, nil
}
