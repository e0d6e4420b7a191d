package filing

// Form144Extractor reads notices of proposed sale of securities.
type Form144Extractor struct{}

func (e *Form144Extractor) Extract(link, title, category string, doc []byte) *Fact {
	d := ParseDocument(doc)

	return &Fact{
		Issuer:         d.Tag("issuerName", PlaceholderCompany),
		Reporter:       d.Tag("nameOfPersonForWhoseAccountTheSecuritiesAreToBeSold", PlaceholderSeller),
		Ticker:         d.Tag("issuerTradingSymbol", PlaceholderTicker),
		AggregateValue: ParseNumber(d.Tag("aggregateMarketValue", "0")),
		Category:       category,
		Title:          title,
		Link:           link,
	}
}
