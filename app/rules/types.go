package rules

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// Decision is the classification outcome for one fact: whether it is
// alert-worthy, the rendered message, and the qualifying line items.
type Decision struct {
	Alert   bool
	Message string
	Lines   []Line
}

// Line is one qualifying item within a filing, carrying the numeric value
// that triggered it.
type Line struct {
	Value float64
	Text  string
}

type Settings struct {
	MinValue        float64
	StrictWatchlist bool
	Codes           []string
}

// Rule maps a fact to a decision. Implementations are pure functions of the
// fact, the settings, and the watchlist snapshot.
type Rule interface {
	Classify(fact *filing.Fact, set watchlist.Set) Decision
}

// RuleFor maps a job rule name to its implementation.
func RuleFor(name string, settings Settings) (Rule, error) {
	switch name {
	case "whale":
		return &WhaleRule{settings: settings}, nil
	case "proposed_sale":
		return &ProposedSaleRule{settings: settings}, nil
	case "stake":
		return &StakeRule{}, nil
	case "event":
		return &EventRule{}, nil
	default:
		return nil, fmt.Errorf("unknown rule: %s", name)
	}
}

// excludedByWatchlist applies the strict-watchlist policy. An empty set
// fails open: an unavailable watchlist never suppresses alerts. Tickers the
// extractor could not find are let through for the same reason.
func excludedByWatchlist(strict bool, ticker string, set watchlist.Set) bool {
	if !strict || set.Empty() || ticker == filing.PlaceholderTicker {
		return false
	}
	return !set.Contains(ticker)
}

// esc escapes untrusted document text before it is embedded in the
// HTML-markup message.
func esc(s string) string {
	return html.EscapeString(s)
}

func formatUSD(v float64) string {
	return "$" + groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
}

func formatShares(v float64) string {
	return groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

func sourceLine(link string) string {
	return fmt.Sprintf("🔗 <a href=\"%s\">View filing</a>", esc(link))
}
