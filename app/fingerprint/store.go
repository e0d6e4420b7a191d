package fingerprint

import (
	"fmt"
	"log/slog"
)

// Backend is one durable home for fingerprints.
type Backend interface {
	Append(id string) error
	Recent(limit int) ([]string, error)
}

// Store is the in-memory dedup set backed by durable storage. The primary
// backend must acknowledge a write before an entry counts as known; extra
// backends are best-effort mirrors.
type Store struct {
	primary Backend
	mirrors []Backend
	known   map[string]struct{}
}

func NewStore(primary Backend, mirrors ...Backend) *Store {
	return &Store{
		primary: primary,
		mirrors: mirrors,
		known:   make(map[string]struct{}),
	}
}

// LoadRecent seeds the in-memory set with the union of all backends. A
// backend that fails to read degrades with a log; the union of the rest
// still loads.
func (s *Store) LoadRecent(limit int) {
	for _, backend := range append([]Backend{s.primary}, s.mirrors...) {
		ids, err := backend.Recent(limit)
		if err != nil {
			slog.Warn("Failed to load fingerprints from backend", "error", err)
			continue
		}
		for _, id := range ids {
			s.known[id] = struct{}{}
		}
	}
}

func (s *Store) IsKnown(id string) bool {
	_, ok := s.known[id]
	return ok
}

// MarkKnown records the fingerprint. The write is durable once the primary
// backend returns; mirror failures are logged and swallowed.
func (s *Store) MarkKnown(id string) error {
	if s.IsKnown(id) {
		return nil
	}

	if err := s.primary.Append(id); err != nil {
		return fmt.Errorf("failed to record fingerprint: %w", err)
	}

	for _, mirror := range s.mirrors {
		if err := mirror.Append(id); err != nil {
			slog.Warn("Failed to mirror fingerprint", "error", err)
		}
	}

	s.known[id] = struct{}{}
	return nil
}

// Size reports how many fingerprints are loaded.
func (s *Store) Size() int {
	return len(s.known)
}
