package filing

import "fmt"

// Placeholder values for fields absent from a document. A missing field
// degrades to its placeholder, never to an extraction failure.
const (
	PlaceholderCompany     = "Unknown company"
	PlaceholderInsider     = "Unknown insider"
	PlaceholderSeller      = "Unknown seller"
	PlaceholderInstitution = "Unknown institution"
	PlaceholderTicker      = "N/A"
)

// Fact is the structured data pulled from one filing document. Fields are
// individually optional; consumers must treat placeholder values as absent.
type Fact struct {
	Issuer   string
	Reporter string
	Ticker   string
	Category string

	// Form 144: proposed aggregate market value of the sale
	AggregateValue float64

	// Form 4: individual transactions within the filing
	Transactions []Transaction

	// 8-K: size-capped readable text and entry title for summarization;
	// Summary and Sentiment are attached after the summarizer ran.
	Title     string
	Text      string
	Summary   string
	Sentiment string

	// Source link, carried through into rendered messages
	Link string
}

type Transaction struct {
	Code       string
	Shares     float64
	Price      float64
	PostShares float64
	Plan10b51  bool
}

// Value is the transaction's dollar volume.
func (t Transaction) Value() float64 {
	return t.Shares * t.Price
}

// PreShares reconstructs the holding before the transaction from the
// reported post-transaction balance.
func (t Transaction) PreShares() float64 {
	if t.Code == "S" {
		return t.PostShares + t.Shares
	}
	return t.PostShares - t.Shares
}

// Extractor turns one filing document into a Fact. Implementations are pure
// over the document bytes and must not fail on missing fields.
type Extractor interface {
	Extract(link, title, category string, doc []byte) *Fact
}

// ExtractorFor maps a job schema name to its extractor.
func ExtractorFor(schema string) (Extractor, error) {
	switch schema {
	case "form4":
		return &Form4Extractor{}, nil
	case "form144":
		return &Form144Extractor{}, nil
	case "sc13":
		return &SC13Extractor{}, nil
	case "text":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extraction schema: %s", schema)
	}
}
