package filing

// Form4Extractor reads insider transaction reports (ownership documents).
type Form4Extractor struct{}

func (e *Form4Extractor) Extract(link, title, category string, doc []byte) *Fact {
	d := ParseDocument(doc)

	fact := &Fact{
		Issuer:   d.Tag("issuerName", PlaceholderCompany),
		Reporter: d.Tag("rptOwnerName", PlaceholderInsider),
		Ticker:   d.Tag("issuerTradingSymbol", PlaceholderTicker),
		Category: category,
		Title:    title,
		Link:     link,
	}

	for _, txn := range d.Elements("nonDerivativeTransaction") {
		code := TagIn(txn, ".//transactionCoding/transactionCode", "")

		plan := TagIn(txn, ".//rule10b51Transaction", "")
		is10b51 := plan == "1" || plan == "true" || plan == "True"

		fact.Transactions = append(fact.Transactions, Transaction{
			Code:       code,
			Shares:     ParseNumber(TagIn(txn, ".//transactionShares/value", "0")),
			Price:      ParseNumber(TagIn(txn, ".//transactionPricePerShare/value", "0")),
			PostShares: ParseNumber(TagIn(txn, ".//sharesOwnedFollowingTransaction/value", "0")),
			Plan10b51:  is10b51,
		})
	}

	return fact
}
