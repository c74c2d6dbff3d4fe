package extractor

import "github.com/insightdelivered/statement-scorer/internal/models"

// TableSource turns a stored statement document into raw table blocks.
// Page indexes are 0-based. Implementations must be safe for concurrent use
// across pages of the same document.
type TableSource interface {
	// PageCount returns the number of pages in the document.
	PageCount(path string) (int, error)
	// ExtractTables returns the table regions detected on one page. A page
	// without tables yields an empty slice and no error.
	ExtractTables(path string, page int) ([]models.RawTableBlock, error)
}
