package rules

import (
	"fmt"
	"strings"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

// EventRule publishes summarized current reports. A fact without a summary
// is not alert-worthy; a failed summarizer therefore skips the entry instead
// of sending an empty digest.
type EventRule struct{}

func (r *EventRule) Classify(fact *filing.Fact, set watchlist.Set) Decision {
	if strings.TrimSpace(fact.Summary) == "" {
		return Decision{}
	}

	var sb strings.Builder
	sb.WriteString("🤖 <b>8-K event digest</b>\n")
	fmt.Fprintf(&sb, "📄 <code>%s</code>\n\n", esc(fact.Title))
	fmt.Fprintf(&sb, "🧠 %s\n", esc(fact.Summary))
	if fact.Sentiment != "" {
		fmt.Fprintf(&sb, "Sentiment: %s\n", esc(fact.Sentiment))
	}
	sb.WriteString(sourceLine(fact.Link))

	return Decision{Alert: true, Message: sb.String(), Lines: []Line{{Text: fact.Summary}}}
}
