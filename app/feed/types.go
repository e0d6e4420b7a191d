package feed

import (
	"strings"
	"time"
)

// Entry is one item from the filing feed. ID is the canonical filing index
// URL and doubles as the dedup key; nothing else about an entry is persisted.
type Entry struct {
	ID        string
	Title     string
	Category  string
	UpdatedAt time.Time
}

// MatchesCategory reports whether the entry's filing-type label starts with
// any of the given prefixes. An empty prefix list matches everything.
func (e Entry) MatchesCategory(prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(e.Category, p) {
			return true
		}
	}
	return false
}

// Query selects a slice of the feed: a form-type code, an ownership scope
// and a result count, matching the upstream query parameters.
type Query struct {
	FormType string
	Owner    string
	Count    int
}
