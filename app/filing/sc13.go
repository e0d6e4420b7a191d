package filing

import (
	"regexp"
	"strings"
)

// SC 13D/G submissions carry their header as SGML tags in plain text, so the
// subject and filer are pattern-matched instead of tree-parsed.
var (
	subjectRe = regexp.MustCompile(`(?s)<SUBJECT-COMPANY>.*?<CONFORMED-NAME>([^\n]+)`)
	filerRe   = regexp.MustCompile(`(?s)<FILED-BY>.*?<CONFORMED-NAME>([^\n]+)`)
)

// SC13Extractor reads beneficial ownership reports (5% stake disclosures).
type SC13Extractor struct{}

func (e *SC13Extractor) Extract(link, title, category string, doc []byte) *Fact {
	body := string(doc)

	fact := &Fact{
		Issuer:   PlaceholderCompany,
		Reporter: PlaceholderInstitution,
		Ticker:   PlaceholderTicker,
		Category: category,
		Title:    title,
		Link:     link,
	}

	if m := subjectRe.FindStringSubmatch(body); m != nil {
		fact.Issuer = trimmedMatch(m[1], PlaceholderCompany)
	}
	if m := filerRe.FindStringSubmatch(body); m != nil {
		fact.Reporter = trimmedMatch(m[1], PlaceholderInstitution)
	}

	return fact
}

func trimmedMatch(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
