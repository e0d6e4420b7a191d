package watchlist

// Set is the externally sourced set of eligible ticker symbols. An empty Set
// means "no watchlist available" and every filter built on it must fail open.
type Set map[string]struct{}

func NewSet(symbols ...string) Set {
	s := make(Set, len(symbols))
	for _, sym := range symbols {
		s.Add(sym)
	}
	return s
}

// Add inserts the symbol together with its punctuation variants.
func (s Set) Add(symbol string) {
	for _, v := range Variants(symbol) {
		s[v] = struct{}{}
	}
}

func (s Set) Contains(symbol string) bool {
	_, ok := s[NormalizeSymbol(symbol)]
	return ok
}

func (s Set) Empty() bool {
	return len(s) == 0
}
