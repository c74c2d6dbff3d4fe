package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

const (
	summarySheet = "Summary"
	ledgerSheet  = "Ledger"
)

// XLSXWriter writes a workbook with a Summary sheet and a Ledger sheet.
type XLSXWriter struct{}

// Write builds the workbook for r and streams it to out.
func (XLSXWriter) Write(out io.Writer, r *models.Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, r); err != nil {
		return err
	}

	if _, err := f.NewSheet(ledgerSheet); err != nil {
		return fmt.Errorf("failed to create ledger sheet: %w", err)
	}
	if err := writeLedgerSheet(f, r); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *models.Report) error {
	rows := [][]any{
		{"Metric", "Cash In", "Cash Out"},
		{"Mean", r.CashIn.Mean.InexactFloat64(), r.CashOut.Mean.InexactFloat64()},
		{"Mode", r.CashIn.Mode.InexactFloat64(), r.CashOut.Mode.InexactFloat64()},
		{"Min", r.CashIn.Min.InexactFloat64(), r.CashOut.Min.InexactFloat64()},
		{"Max", r.CashIn.Max.InexactFloat64(), r.CashOut.Max.InexactFloat64()},
		{"Count", len(r.AllCashIn), len(r.AllCashOut)},
		{},
		{"Total", r.Total.InexactFloat64()},
		{"Pages", r.PageCount},
		{"Failed pages", len(r.FailedPages())},
	}
	return setRows(f, summarySheet, rows)
}

func writeLedgerSheet(f *excelize.File, r *models.Report) error {
	rows := [][]any{{"Page", "Type", "Amount"}}
	for _, txn := range r.Ledger {
		rows = append(rows, []any{txn.Page + 1, string(txn.Direction), txn.Amount.InexactFloat64()})
	}
	return setRows(f, ledgerSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
