package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// New returns the writer for a format name: json, csv or xlsx.
func New(format string) (Writer, error) {
	switch format {
	case "json", "":
		return JSONWriter{}, nil
	case "csv":
		return &CSVWriter{IncludeTotals: true}, nil
	case "xlsx":
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (use json, csv or xlsx)", format)
	}
}

// Writer renders a report.
type Writer interface {
	Write(out io.Writer, r *models.Report) error
}

// WriteToFile writes the report to a file at the given path.
func WriteToFile(w Writer, path string, r *models.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return w.Write(f, r)
}
