package rules

import (
	"fmt"
	"strings"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// ProposedSaleRule flags notices of proposed sale whose aggregate market
// value meets the configured minimum.
type ProposedSaleRule struct {
	settings Settings
}

func (r *ProposedSaleRule) Classify(fact *filing.Fact, set watchlist.Set) Decision {
	if excludedByWatchlist(r.settings.StrictWatchlist, fact.Ticker, set) {
		return Decision{}
	}

	if fact.AggregateValue < r.settings.MinValue || fact.AggregateValue == 0 {
		return Decision{}
	}

	line := Line{
		Value: fact.AggregateValue,
		Text:  fmt.Sprintf("💀 Proposed sale size: %s\n", formatUSD(fact.AggregateValue)),
	}

	var sb strings.Builder
	sb.WriteString("🚨 <b>Form 144: proposed sale</b>\n")
	fmt.Fprintf(&sb, "🏢 %s ($%s)\n", esc(fact.Issuer), esc(fact.Ticker))
	fmt.Fprintf(&sb, "👤 Seller: %s\n", esc(fact.Reporter))
	sb.WriteString(line.Text)
	sb.WriteString("⚠️ <i>Sale intent only; the shares may hit the market soon</i>\n")
	sb.WriteString(sourceLine(fact.Link))

	return Decision{Alert: true, Message: sb.String(), Lines: []Line{line}}
}
