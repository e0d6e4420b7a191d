package rules

import (
	"fmt"
	"strings"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// StakeRule flags 5% beneficial-ownership disclosures, distinguishing an
// activist (13D) stake from a passive (13G) one.
type StakeRule struct{}

func (r *StakeRule) Classify(fact *filing.Fact, set watchlist.Set) Decision {
	active := strings.Contains(fact.Category, "13D")
	passive := strings.Contains(fact.Category, "13G")
	if !active && !passive {
		return Decision{}
	}

	icon := "🏦"
	status := "🤝 <b>Passive stake</b> (long-horizon capital moving in)"
	if active {
		icon = "🦈"
		status = "🎯 <b>Active intent</b> (may seek control or board influence)"
	}

	line := Line{Text: status}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>5%% stake alert</b>\n", icon)
	fmt.Fprintf(&sb, "📄 <code>%s</code>\n", esc(fact.Category))
	fmt.Fprintf(&sb, "🏢 Target: <b>%s</b>\n", esc(fact.Issuer))
	fmt.Fprintf(&sb, "💼 Filer: <b>%s</b>\n", esc(fact.Reporter))
	fmt.Fprintf(&sb, "Status: %s\n", status)
	sb.WriteString("⚠️ <i>Holding has crossed the 5% statutory threshold</i>\n")
	sb.WriteString(sourceLine(fact.Link))

	return Decision{Alert: true, Message: sb.String(), Lines: []Line{line}}
}
