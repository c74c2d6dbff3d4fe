package models

// Cell is one table cell as produced by the table detector. A nil Cell is an
// absent cell: the detector found no text at that column position.
type Cell = *string

// Text returns a present Cell holding s.
func Text(s string) Cell {
	return &s
}

// RawRow is an ordered sequence of cells from one detected table row.
type RawRow []Cell

// Complete reports whether the row is non-empty and has no absent cells.
func (r RawRow) Complete() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if c == nil {
			return false
		}
	}
	return true
}

// Strings returns the row's cell values. Absent cells become "".
func (r RawRow) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		if c != nil {
			out[i] = *c
		}
	}
	return out
}

// RawTableBlock is one contiguous table region detected on a page.
type RawTableBlock []RawRow

// Header holds the column names of a page's table, in order.
// Names are not guaranteed to be unique.
type Header []string

// Index returns the position of the first column called name, or -1.
func (h Header) Index(name string) int {
	for i, col := range h {
		if col == name {
			return i
		}
	}
	return -1
}

// ParsedRow is a validated data row, matched by position against the page's
// Header. It may be shorter than the header but always reaches the AMOUNT and
// TRANS. TYPE columns.
type ParsedRow struct {
	Values []string `json:"values"`
}
