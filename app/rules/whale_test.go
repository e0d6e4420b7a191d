package rules

import (
	"strings"
	"testing"

	"github.com/imakhov/edgar-comb/app/filing"
	"github.com/imakhov/edgar-comb/app/watchlist"
)

func whaleSettings() Settings {
	return Settings{MinValue: 500000, Codes: []string{"P", "S"}}
}

func whaleFact() *filing.Fact {
	return &filing.Fact{
		Issuer:   "Apple Inc.",
		Reporter: "DOE JOHN",
		Ticker:   "AAPL",
		Link:     "https://www.sec.gov/x-index.htm",
		Transactions: []filing.Transaction{
			{Code: "S", Shares: 10000, Price: 60, PostShares: 50000},
		},
	}
}

func TestWhaleRule_ThresholdBoundary(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	// value == minimum qualifies
	atMin := whaleFact()
	atMin.Transactions[0].Shares = 10000
	atMin.Transactions[0].Price = 50 // 500,000 exactly
	decision := rule.Classify(atMin, watchlist.NewSet())
	if !decision.Alert {
		t.Error("Value exactly at the minimum must be alert-worthy")
	}

	// value just below the minimum does not
	below := whaleFact()
	below.Transactions[0].Shares = 9999
	below.Transactions[0].Price = 50 // 499,950
	decision = rule.Classify(below, watchlist.NewSet())
	if decision.Alert {
		t.Error("Value below the minimum must not be alert-worthy")
	}
}

func TestWhaleRule_MessageContent(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}
	decision := rule.Classify(whaleFact(), watchlist.NewSet())

	if !decision.Alert {
		t.Fatal("Expected alert-worthy decision")
	}
	for _, want := range []string{"$600,000", "Apple Inc.", "DOE JOHN", "$AAPL", "10,000 shares", "Open-market sale"} {
		if !strings.Contains(decision.Message, want) {
			t.Errorf("Expected message to contain %q:\n%s", want, decision.Message)
		}
	}
	if len(decision.Lines) != 1 {
		t.Fatalf("Expected 1 line item, got %d", len(decision.Lines))
	}
	if decision.Lines[0].Value != 600000 {
		t.Errorf("Expected line value 600000, got %f", decision.Lines[0].Value)
	}
}

func TestWhaleRule_MultiTransactionAggregation(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	fact := whaleFact()
	fact.Transactions = []filing.Transaction{
		{Code: "P", Shares: 20000, Price: 50, PostShares: 20000},  // 1,000,000 buy
		{Code: "S", Shares: 15000, Price: 40, PostShares: 0},      // 600,000 sale
		{Code: "S", Shares: 100, Price: 40, PostShares: 100000},   // 4,000 below minimum
		{Code: "M", Shares: 100000, Price: 60, PostShares: 50000}, // non-market code
	}

	decision := rule.Classify(fact, watchlist.NewSet())
	if !decision.Alert {
		t.Fatal("Expected alert-worthy decision")
	}
	// Two qualifying transactions, one message
	if len(decision.Lines) != 2 {
		t.Fatalf("Expected 2 line items, got %d", len(decision.Lines))
	}
	if !strings.Contains(decision.Message, "$1,000,000") || !strings.Contains(decision.Message, "$600,000") {
		t.Errorf("Expected both qualifying totals in one message:\n%s", decision.Message)
	}
}

func TestWhaleRule_IntentSubClassification(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	// Buy from zero: new position
	newPos := whaleFact()
	newPos.Transactions = []filing.Transaction{{Code: "P", Shares: 20000, Price: 50, PostShares: 20000}}
	decision := rule.Classify(newPos, watchlist.NewSet())
	if !strings.Contains(decision.Message, "new position") {
		t.Errorf("Expected new-position marker:\n%s", decision.Message)
	}

	// Sale to zero: full exit
	exit := whaleFact()
	exit.Transactions = []filing.Transaction{{Code: "S", Shares: 20000, Price: 50, PostShares: 0}}
	decision = rule.Classify(exit, watchlist.NewSet())
	if !strings.Contains(decision.Message, "full exit") {
		t.Errorf("Expected full-exit marker:\n%s", decision.Message)
	}

	// Routine partial sale: neither
	partial := whaleFact()
	decision = rule.Classify(partial, watchlist.NewSet())
	if strings.Contains(decision.Message, "new position") || strings.Contains(decision.Message, "full exit") {
		t.Errorf("Routine trade should carry no intent marker:\n%s", decision.Message)
	}
}

func TestWhaleRule_Plan10b51Marker(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	fact := whaleFact()
	fact.Transactions[0].Plan10b51 = true
	decision := rule.Classify(fact, watchlist.NewSet())
	if !strings.Contains(decision.Message, "10b5-1 plan") {
		t.Errorf("Expected 10b5-1 marker:\n%s", decision.Message)
	}

	fact.Transactions[0].Plan10b51 = false
	decision = rule.Classify(fact, watchlist.NewSet())
	if !strings.Contains(decision.Message, "discretionary") {
		t.Errorf("Expected discretionary marker:\n%s", decision.Message)
	}
}

func TestWhaleRule_StrictWatchlist(t *testing.T) {
	settings := whaleSettings()
	settings.StrictWatchlist = true
	rule := &WhaleRule{settings: settings}

	// Ticker on the list passes
	decision := rule.Classify(whaleFact(), watchlist.NewSet("AAPL", "NVDA"))
	if !decision.Alert {
		t.Error("Watchlisted ticker must pass the strict filter")
	}

	// Ticker off the list is excluded
	decision = rule.Classify(whaleFact(), watchlist.NewSet("NVDA"))
	if decision.Alert {
		t.Error("Non-watchlisted ticker must be excluded in strict mode")
	}
}

func TestWhaleRule_WatchlistFailOpen(t *testing.T) {
	settings := whaleSettings()
	settings.StrictWatchlist = true
	rule := &WhaleRule{settings: settings}

	// Empty watchlist fails open: the threshold rule still runs
	decision := rule.Classify(whaleFact(), watchlist.NewSet())
	if !decision.Alert {
		t.Error("Empty watchlist must fail open, not suppress every alert")
	}
}

func TestWhaleRule_PlaceholderTickerPasses(t *testing.T) {
	settings := whaleSettings()
	settings.StrictWatchlist = true
	rule := &WhaleRule{settings: settings}

	fact := whaleFact()
	fact.Ticker = filing.PlaceholderTicker
	decision := rule.Classify(fact, watchlist.NewSet("NVDA"))
	if !decision.Alert {
		t.Error("A ticker the extractor could not find must not be filtered out")
	}
}

func TestWhaleRule_PlaceholderFactNotAlertWorthy(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	fact := &filing.Fact{
		Issuer:   filing.PlaceholderCompany,
		Reporter: filing.PlaceholderInsider,
		Ticker:   filing.PlaceholderTicker,
	}
	decision := rule.Classify(fact, watchlist.NewSet())
	if decision.Alert {
		t.Error("All-placeholder fact must not be alert-worthy")
	}
}

func TestWhaleRule_EscapesUntrustedText(t *testing.T) {
	rule := &WhaleRule{settings: whaleSettings()}

	fact := whaleFact()
	fact.Issuer = `Evil <b>&Co`
	decision := rule.Classify(fact, watchlist.NewSet())
	if strings.Contains(decision.Message, "Evil <b>") {
		t.Errorf("Issuer name must be escaped:\n%s", decision.Message)
	}
	if !strings.Contains(decision.Message, "Evil &lt;b&gt;&amp;Co") {
		t.Errorf("Expected escaped issuer name:\n%s", decision.Message)
	}
}
