package models

import "github.com/shopspring/decimal"

// PageResult is the outcome of processing one page. Err is set on failure,
// in which case the other fields are zero.
type PageResult struct {
	Page    int
	Header  Header
	Rows    []ParsedRow
	Score   decimal.Decimal
	CashIn  []decimal.Decimal
	CashOut []decimal.Decimal
	// Transactions lists every row with a parseable amount, in row order.
	Transactions []Transaction
	Err          string
}

// OK reports whether the page was processed successfully.
func (r PageResult) OK() bool {
	return r.Err == ""
}

// Failed builds the failure result for a page.
func Failed(page int, err error) PageResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return PageResult{Page: page, Err: msg}
}

// Stats summarises one sequence of amounts.
type Stats struct {
	Mean decimal.Decimal
	Mode decimal.Decimal
	Min  decimal.Decimal
	Max  decimal.Decimal
}

// PageSummary is the per-page diagnostic carried in a Report.
type PageSummary struct {
	Page  int
	Rows  int
	Score decimal.Decimal
	Error string
}

// Report is the statement-wide result of one processing run.
type Report struct {
	Total      decimal.Decimal
	CashIn     Stats
	CashOut    Stats
	AllCashIn  []decimal.Decimal
	AllCashOut []decimal.Decimal
	// Ledger holds the transactions of successful pages in page order.
	Ledger    []Transaction
	PageCount int
	Pages     []PageSummary
}

// FailedPages returns the summaries of pages that produced an error.
func (r Report) FailedPages() []PageSummary {
	var failed []PageSummary
	for _, p := range r.Pages {
		if p.Error != "" {
			failed = append(failed, p)
		}
	}
	return failed
}
