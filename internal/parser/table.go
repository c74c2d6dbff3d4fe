package parser

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// ErrStructural is matched by every error ParseTable returns.
var ErrStructural = errors.New("structural table error")

var (
	// ErrNoTable means the detector found no table region on the page.
	ErrNoTable = &structuralError{msg: "no table found on this page"}
	// ErrNoHeader means no row of the merged table was complete.
	ErrNoHeader = &structuralError{msg: "no valid table header found"}
)

type structuralError struct {
	msg string
}

func (e *structuralError) Error() string { return e.msg }

func (e *structuralError) Is(target error) bool { return target == ErrStructural }

// MissingColumnError reports a required column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column: %s", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrStructural }

// Table is a page's validated table: the detected header, the complete data
// rows below it, and the positions of the required columns.
type Table struct {
	Header    models.Header
	Rows      []models.ParsedRow
	AmountCol int
	TypeCol   int
}

// ParseTable merges a page's raw table blocks and validates the result.
//
// Blocks are concatenated in the order given, so a table the detector split
// into several regions is read as one. The first complete row becomes the
// header; rows before it are discarded. Data rows are kept when they are
// complete and reach both the AMOUNT and TRANS. TYPE columns: a continuation
// block can come back narrower than the header block. Cells past the header
// width are dropped.
func ParseTable(blocks []models.RawTableBlock) (*Table, error) {
	if len(blocks) == 0 {
		return nil, ErrNoTable
	}

	merged := mergeBlocks(blocks)

	headerIdx := -1
	for i, row := range merged {
		if row.Complete() {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	header := models.Header(merged[headerIdx].Strings())

	amountCol := header.Index(models.ColumnAmount)
	if amountCol < 0 {
		return nil, &MissingColumnError{Column: models.ColumnAmount}
	}
	typeCol := header.Index(models.ColumnTransType)
	if typeCol < 0 {
		return nil, &MissingColumnError{Column: models.ColumnTransType}
	}

	minWidth := max(amountCol, typeCol) + 1

	var rows []models.ParsedRow
	for _, raw := range merged[headerIdx+1:] {
		if !raw.Complete() || len(raw) < minWidth {
			continue
		}
		values := raw.Strings()
		if len(values) > len(header) {
			values = values[:len(header)]
		}
		rows = append(rows, models.ParsedRow{Values: values})
	}

	return &Table{
		Header:    header,
		Rows:      rows,
		AmountCol: amountCol,
		TypeCol:   typeCol,
	}, nil
}

func mergeBlocks(blocks []models.RawTableBlock) []models.RawRow {
	if len(blocks) == 1 {
		return blocks[0]
	}
	n := 0
	for _, b := range blocks {
		n += len(b)
	}
	merged := make([]models.RawRow, 0, n)
	for _, b := range blocks {
		merged = append(merged, b...)
	}
	return merged
}
