package fingerprint

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileBackend stores fingerprints one per line in an append-only local
// file. It is the primary backend: every append is synced to disk before it
// is acknowledged, so a crash mid-run never forgets a published alert.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Append(id string) error {
	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open fingerprint file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("failed to append fingerprint: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync fingerprint file: %w", err)
	}
	return nil
}

// Recent returns up to limit fingerprints from the tail of the file, newest
// first. A missing file is an empty history, not an error.
func (b *FileBackend) Recent(limit int) ([]string, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open fingerprint file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fingerprint file: %w", err)
	}

	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	// Reverse so the newest entry comes first
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}
