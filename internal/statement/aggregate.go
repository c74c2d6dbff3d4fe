package statement

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// Aggregate folds page-indexed results into a Report. results[i] must be page
// i's result. Failed pages add nothing to the totals or amount sequences.
func Aggregate(results []models.PageResult) models.Report {
	report := models.Report{
		Total:      decimal.Zero,
		AllCashIn:  []decimal.Decimal{},
		AllCashOut: []decimal.Decimal{},
		Ledger:     []models.Transaction{},
		PageCount:  len(results),
		Pages:      make([]models.PageSummary, 0, len(results)),
	}

	for page, r := range results {
		summary := models.PageSummary{Page: page, Score: decimal.Zero, Error: r.Err}
		if r.OK() {
			report.Total = report.Total.Add(r.Score)
			report.AllCashIn = append(report.AllCashIn, r.CashIn...)
			report.AllCashOut = append(report.AllCashOut, r.CashOut...)
			report.Ledger = append(report.Ledger, r.Transactions...)
			summary.Rows = len(r.Rows)
			summary.Score = r.Score
		}
		report.Pages = append(report.Pages, summary)
	}

	report.CashIn = Summarize(report.AllCashIn)
	report.CashOut = Summarize(report.AllCashOut)
	return report
}
