package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// PDFSource detects tables in PDF statements using the ledongthuc/pdf reader.
// Every call opens its own file handle, so one PDFSource can serve many
// workers reading the same document.
type PDFSource struct {
	Layout Layout
}

// NewPDFSource returns a PDFSource using the given layout thresholds.
// Zero fields in layout fall back to DefaultLayout.
func NewPDFSource(layout Layout) *PDFSource {
	return &PDFSource{Layout: layout.withDefaults()}
}

// PageCount returns the number of pages in the PDF at path.
func (s *PDFSource) PageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}

// ExtractTables reads page (0-based) and returns its detected table blocks.
func (s *PDFSource) ExtractTables(path string, page int) (blocks []models.RawTableBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed on page %d: %v", page, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if page < 0 || page >= r.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", page, r.NumPage())
	}

	p := r.Page(page + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", page)
	}

	content := p.Content()
	return DetectTables(content.Text, s.Layout), nil
}
