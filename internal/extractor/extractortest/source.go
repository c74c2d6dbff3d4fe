// Package extractortest provides an in-memory TableSource for tests.
package extractortest

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// Source serves pre-built table blocks per page. The path argument is ignored.
type Source struct {
	Pages    [][]models.RawTableBlock
	CountErr error
	// Errs and Panics make ExtractTables fail for the given page.
	Errs   map[int]error
	Panics map[int]any
	// Delay, when set, sleeps before returning a page.
	Delay func(page int) time.Duration

	calls atomic.Int64
}

func (s *Source) PageCount(string) (int, error) {
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	return len(s.Pages), nil
}

func (s *Source) ExtractTables(_ string, page int) ([]models.RawTableBlock, error) {
	s.calls.Add(1)
	if s.Delay != nil {
		time.Sleep(s.Delay(page))
	}
	if v, ok := s.Panics[page]; ok {
		panic(v)
	}
	if err, ok := s.Errs[page]; ok {
		return nil, err
	}
	if page < 0 || page >= len(s.Pages) {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	return s.Pages[page], nil
}

// Calls returns how many times ExtractTables has been invoked.
func (s *Source) Calls() int {
	return int(s.calls.Load())
}

// Block builds a table block from string rows; "<nil>" marks an absent cell.
func Block(rows ...[]string) models.RawTableBlock {
	block := make(models.RawTableBlock, 0, len(rows))
	for _, r := range rows {
		row := make(models.RawRow, len(r))
		for i, v := range r {
			if v != "<nil>" {
				row[i] = models.Text(v)
			}
		}
		block = append(block, row)
	}
	return block
}

// Ledger builds a single-block page with a DATE, TRANS. TYPE, AMOUNT header
// followed by one row per (type, amount) pair.
func Ledger(pairs ...[2]string) []models.RawTableBlock {
	rows := [][]string{{"DATE", models.ColumnTransType, models.ColumnAmount}}
	for i, p := range pairs {
		rows = append(rows, []string{fmt.Sprintf("%02d/01", i+1), p[0], p[1]})
	}
	return []models.RawTableBlock{Block(rows...)}
}
