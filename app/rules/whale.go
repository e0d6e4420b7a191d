package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// WhaleRule flags open-market insider transactions whose dollar volume meets
// the configured minimum. Qualifying transactions within one filing are
// aggregated into a single message.
type WhaleRule struct {
	settings Settings
}

func (r *WhaleRule) Classify(fact *filing.Fact, set watchlist.Set) Decision {
	if excludedByWatchlist(r.settings.StrictWatchlist, fact.Ticker, set) {
		return Decision{}
	}

	var lines []Line
	for _, txn := range fact.Transactions {
		if !slices.Contains(r.settings.Codes, txn.Code) {
			continue
		}
		if txn.Value() < r.settings.MinValue {
			continue
		}
		lines = append(lines, Line{
			Value: txn.Value(),
			Text:  r.renderTransaction(txn),
		})
	}

	if len(lines) == 0 {
		return Decision{}
	}

	var sb strings.Builder
	sb.WriteString("🐳 <b>Insider whale alert</b>\n")
	fmt.Fprintf(&sb, "🏢 <b>%s</b> ($%s)\n", esc(fact.Issuer), esc(fact.Ticker))
	fmt.Fprintf(&sb, "👤 %s\n", esc(fact.Reporter))
	for _, line := range lines {
		sb.WriteString(line.Text)
	}
	sb.WriteString(sourceLine(fact.Link))

	return Decision{Alert: true, Message: sb.String(), Lines: lines}
}

func (r *WhaleRule) renderTransaction(txn filing.Transaction) string {
	action := "🟢 Open-market buy"
	if txn.Code == "S" {
		action = "🔴 Open-market sale"
	}

	plan := "🔥 (discretionary)"
	if txn.Plan10b51 {
		plan = "🤖 (10b5-1 plan)"
	}

	intent := ""
	switch {
	case txn.Code == "P" && txn.PreShares() == 0 && txn.Shares > 0:
		intent = " 🌱 new position"
	case txn.Code == "S" && txn.PostShares == 0 && txn.Shares > 0:
		intent = " 🚪 full exit"
	}

	return fmt.Sprintf("👉 %s: %s shares %s%s\n💰 Total: %s (@ $%.2f)\n",
		action, formatShares(txn.Shares), plan, intent, formatUSD(txn.Value()), txn.Price)
}
