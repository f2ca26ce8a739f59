package models

import "strings"

// Source identifies one of the six per-account JSON exports
type Source int

const (
	SourceBankTransactions Source = iota
	SourceCreditReport
	SourceMFTransactions
	SourceEPFDetails
	SourceNetWorth
	SourceStockTransactions
)

// Sources lists every source in tab order
var Sources = []Source{
	SourceBankTransactions,
	SourceCreditReport,
	SourceMFTransactions,
	SourceEPFDetails,
	SourceNetWorth,
	SourceStockTransactions,
}

var sourceLabels = map[Source]string{
	SourceBankTransactions:  "Bank Transactions",
	SourceCreditReport:      "Credit Report",
	SourceMFTransactions:    "Mutual Fund Transactions",
	SourceEPFDetails:        "EPF Details",
	SourceNetWorth:          "Net Worth",
	SourceStockTransactions: "Stock Transactions",
}

var sourceFiles = map[Source]string{
	SourceBankTransactions:  "fetch_bank_transactions.json",
	SourceCreditReport:      "fetch_credit_report.json",
	SourceMFTransactions:    "fetch_mf_transactions.json",
	SourceEPFDetails:        "fetch_epf_details.json",
	SourceNetWorth:          "fetch_net_worth.json",
	SourceStockTransactions: "fetch_stock_transactions.json",
}

// Label returns the tab title
func (s Source) Label() string {
	return sourceLabels[s]
}

// Filename returns the file name of the export inside an account directory
func (s Source) Filename() string {
	return sourceFiles[s]
}

// Slug returns the short name used in URLs, e.g. "bank_transactions"
func (s Source) Slug() string {
	return strings.TrimSuffix(strings.TrimPrefix(s.Filename(), "fetch_"), ".json")
}

func (s Source) String() string {
	return s.Slug()
}

// ParseSource resolves a slug back to its source
func ParseSource(slug string) (Source, bool) {
	for _, s := range Sources {
		if s.Slug() == slug {
			return s, true
		}
	}
	return 0, false
}
