package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// ledgerRow is one CSV line. Pages are numbered from 1 in exported files.
type ledgerRow struct {
	Page      int    `csv:"Page"`
	Direction string `csv:"Type"`
	Amount    string `csv:"Amount"`
}

func ledgerRows(r *models.Report) []*ledgerRow {
	rows := make([]*ledgerRow, 0, len(r.Ledger))
	for _, txn := range r.Ledger {
		rows = append(rows, &ledgerRow{
			Page:      txn.Page + 1,
			Direction: string(txn.Direction),
			Amount:    txn.Amount.String(),
		})
	}
	return rows
}

// CSVWriter writes the classified transactions of a report as a CSV ledger.
type CSVWriter struct {
	// IncludeTotals appends summary lines after the ledger.
	IncludeTotals bool
}

// Write writes the ledger in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, r *models.Report) error {
	rows := ledgerRows(r)
	if len(rows) == 0 {
		if _, err := io.WriteString(out, "Page,Type,Amount\n"); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	} else if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV ledger: %w", err)
	}

	if !w.IncludeTotals {
		return nil
	}

	totals := csv.NewWriter(out)
	for _, line := range [][]string{
		{"# Total", r.Total.String()},
		{"# Mean Cash In", r.CashIn.Mean.String()},
		{"# Mean Cash Out", r.CashOut.Mean.String()},
	} {
		if err := totals.Write(line); err != nil {
			return fmt.Errorf("failed to write CSV totals: %w", err)
		}
	}
	totals.Flush()
	return totals.Error()
}
