package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// Layout holds the geometric thresholds, in PDF points, used to rebuild table
// rows and columns from positioned glyphs.
type Layout struct {
	// RowTolerance is the maximum Y difference for glyphs on the same row.
	RowTolerance float64
	// WordGap is the horizontal gap above which a space is inserted.
	WordGap float64
	// CellGap is the horizontal gap above which a new cell starts.
	CellGap float64
	// BlockGap is the vertical gap between rows that starts a new table block.
	BlockGap float64
}

// DefaultLayout returns thresholds that suit typical A4 bank statements.
func DefaultLayout() Layout {
	return Layout{
		RowTolerance: 2.0,
		WordGap:      1.5,
		CellGap:      10.0,
		BlockGap:     50.0,
	}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.RowTolerance <= 0 {
		l.RowTolerance = d.RowTolerance
	}
	if l.WordGap <= 0 {
		l.WordGap = d.WordGap
	}
	if l.CellGap <= 0 {
		l.CellGap = d.CellGap
	}
	if l.BlockGap <= 0 {
		l.BlockGap = d.BlockGap
	}
	return l
}

const (
	minTableRows = 2
	minTableCols = 2
)

// cell is a run of glyphs on one row with no gap wider than CellGap.
type cell struct {
	x0, x1 float64
	text   string
}

type textRow struct {
	y     float64
	cells []cell
}

// span is a column's horizontal extent within a block.
type span struct {
	x0, x1 float64
}

// DetectTables groups positioned glyphs into table blocks.
//
// Glyphs are bucketed into rows by Y, rows are split into cells on wide
// horizontal gaps, and a vertical gap wider than BlockGap starts a new block.
// Each block's columns are the merged horizontal extents of cells from its
// multi-cell rows; a row with nothing under a column gets an absent cell there.
// Runs of rows with fewer than two rows or two columns are dropped.
func DetectTables(texts []pdf.Text, layout Layout) []models.RawTableBlock {
	layout = layout.withDefaults()

	rows := groupRows(texts, layout)
	if len(rows) == 0 {
		return nil
	}

	var blocks []models.RawTableBlock
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i-1].y-rows[i].y <= layout.BlockGap {
			continue
		}
		if block := buildBlock(rows[start:i]); len(block) > 0 {
			blocks = append(blocks, block)
		}
		start = i
	}
	return blocks
}

// groupRows buckets glyphs by baseline and returns rows top to bottom.
func groupRows(texts []pdf.Text, layout Layout) []textRow {
	type bucket struct {
		y      float64
		glyphs []pdf.Text
	}

	var buckets []*bucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		var found *bucket
		for _, b := range buckets {
			if math.Abs(b.y-t.Y) <= layout.RowTolerance {
				found = b
				break
			}
		}
		if found == nil {
			found = &bucket{y: t.Y}
			buckets = append(buckets, found)
		}
		found.glyphs = append(found.glyphs, t)
	}

	// PDF Y grows upwards, so the top row has the largest Y.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].y > buckets[j].y
	})

	rows := make([]textRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, textRow{y: b.y, cells: splitCells(b.glyphs, layout)})
	}
	return rows
}

// splitCells orders a row's glyphs left to right and joins them into cells.
func splitCells(glyphs []pdf.Text, layout Layout) []cell {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].X < glyphs[j].X
	})

	var cells []cell
	var sb strings.Builder
	var cur cell
	for i, g := range glyphs {
		if i > 0 {
			gap := g.X - cur.x1
			if gap > layout.CellGap {
				cur.text = sb.String()
				cells = append(cells, cur)
				sb.Reset()
				cur = cell{x0: g.X}
			} else if gap > layout.WordGap {
				sb.WriteByte(' ')
			}
		} else {
			cur.x0 = g.X
		}
		sb.WriteString(g.S)
		cur.x1 = math.Max(cur.x1, g.X+g.W)
	}
	cur.text = sb.String()
	cells = append(cells, cur)
	return cells
}

// buildBlock lays a run of rows out against the block's column spans.
// Regions smaller than minTableRows x minTableCols are not tables.
func buildBlock(rows []textRow) models.RawTableBlock {
	if len(rows) < minTableRows {
		return nil
	}
	columns := columnSpans(rows)
	if len(columns) < minTableCols {
		return nil
	}

	block := make(models.RawTableBlock, 0, len(rows))
	for _, r := range rows {
		raw := make(models.RawRow, len(columns))
		for _, c := range r.cells {
			col := columnFor(columns, c)
			if raw[col] == nil {
				raw[col] = models.Text(c.text)
			} else {
				raw[col] = models.Text(*raw[col] + " " + c.text)
			}
		}
		block = append(block, raw)
	}
	return block
}

// columnSpans merges the overlapping extents of cells from rows that have
// more than one cell. Single-cell rows (titles, notes) are ignored so they
// cannot bridge columns.
func columnSpans(rows []textRow) []span {
	var spans []span
	for _, r := range rows {
		if len(r.cells) < 2 {
			continue
		}
		for _, c := range r.cells {
			spans = append(spans, span{x0: c.x0, x1: c.x1})
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].x0 < spans[j].x0
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.x0 <= last.x1 {
			last.x1 = math.Max(last.x1, s.x1)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// columnFor returns the column containing the cell's centre, or the nearest
// one when the centre falls in a gap.
func columnFor(columns []span, c cell) int {
	center := (c.x0 + c.x1) / 2
	best, bestDist := 0, math.Inf(1)
	for i, col := range columns {
		if center >= col.x0 && center <= col.x1 {
			return i
		}
		dist := math.Min(math.Abs(center-col.x0), math.Abs(center-col.x1))
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
