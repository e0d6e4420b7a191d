package watchlist

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSymbol upper-cases a ticker and strips diacritics so symbols
// compare consistently regardless of the source's formatting.
func NormalizeSymbol(symbol string) string {
	folded, _, err := transform.String(asciiFold, symbol)
	if err != nil {
		folded = symbol
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

// Variants returns the normalized symbol plus its punctuation variants:
// share-class tickers appear as both "BRK.B" and "BRK-B" across sources.
func Variants(symbol string) []string {
	base := NormalizeSymbol(symbol)
	if base == "" {
		return nil
	}

	variants := []string{base}
	if strings.Contains(base, ".") {
		variants = append(variants, strings.ReplaceAll(base, ".", "-"))
	}
	if strings.Contains(base, "-") {
		variants = append(variants, strings.ReplaceAll(base, "-", "."))
	}
	return variants
}
