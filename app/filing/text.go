package filing

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// textPrefixLimit caps how much document text is handed to the summarizer.
const textPrefixLimit = 8000

// TextExtractor reads free-form filings (8-K current reports) as capped
// readable text for downstream summarization.
type TextExtractor struct{}

func (e *TextExtractor) Extract(link, title, category string, doc []byte) *Fact {
	return &Fact{
		Issuer:   PlaceholderCompany,
		Reporter: PlaceholderInsider,
		Ticker:   PlaceholderTicker,
		Category: category,
		Title:    title,
		Text:     readableText(doc),
		Link:     link,
	}
}

// readableText strips markup via readability when possible and falls back to
// the raw body, capped at textPrefixLimit either way.
func readableText(doc []byte) string {
	text := string(doc)

	article, err := readability.FromReader(strings.NewReader(text), nil)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		text = article.TextContent
	}

	if len(text) > textPrefixLimit {
		text = text[:textPrefixLimit]
	}
	return text
}
