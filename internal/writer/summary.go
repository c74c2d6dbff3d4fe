// Package writer renders statement reports for clients and files.
package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// Summary is the client-facing form of a Report. Amounts are JSON numbers.
type Summary struct {
	MeanCashIn   float64      `json:"mean_cash_in"`
	MeanCashOut  float64      `json:"mean_cash_out"`
	ModalCashIn  float64      `json:"modal_cash_in"`
	ModalCashOut float64      `json:"modal_cash_out"`
	MaxCashIn    float64      `json:"max_cash_in"`
	MaxCashOut   float64      `json:"max_cash_out"`
	MinCashIn    float64      `json:"min_cash_in"`
	MinCashOut   float64      `json:"min_cash_out"`
	AllCashIn    []float64    `json:"all_cash_in"`
	AllCashOut   []float64    `json:"all_cash_out"`
	Total        float64      `json:"total"`
	Pages        int          `json:"pages"`
	FailedPages  []FailedPage `json:"failed_pages"`
}

// FailedPage identifies a page that contributed nothing and why.
type FailedPage struct {
	Page  int    `json:"page"`
	Error string `json:"error"`
}

// NewSummary converts a Report. Slices are never nil.
func NewSummary(r *models.Report) Summary {
	failed := []FailedPage{}
	for _, p := range r.FailedPages() {
		failed = append(failed, FailedPage{Page: p.Page, Error: p.Error})
	}

	return Summary{
		MeanCashIn:   r.CashIn.Mean.InexactFloat64(),
		MeanCashOut:  r.CashOut.Mean.InexactFloat64(),
		ModalCashIn:  r.CashIn.Mode.InexactFloat64(),
		ModalCashOut: r.CashOut.Mode.InexactFloat64(),
		MaxCashIn:    r.CashIn.Max.InexactFloat64(),
		MaxCashOut:   r.CashOut.Max.InexactFloat64(),
		MinCashIn:    r.CashIn.Min.InexactFloat64(),
		MinCashOut:   r.CashOut.Min.InexactFloat64(),
		AllCashIn:    floats(r.AllCashIn),
		AllCashOut:   floats(r.AllCashOut),
		Total:        r.Total.InexactFloat64(),
		Pages:        r.PageCount,
		FailedPages:  failed,
	}
}

func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}

// JSONWriter writes the report summary as indented JSON.
type JSONWriter struct{}

// Write encodes the summary of r to out.
func (JSONWriter) Write(out io.Writer, r *models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummary(r)); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
