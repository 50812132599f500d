package report

import (
	"fmt"

	"github.com/user/framemark/pkg/ports"
)

// Writer writes formatted reports to files.
type Writer struct {
	fs        ports.FileSystem
	formatter Formatter
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(fs ports.FileSystem, formatter Formatter) *Writer {
	return &Writer{
		fs:        fs,
		formatter: formatter,
	}
}

// Write formats the report and writes it to path.
func (w *Writer) Write(path string, r *Report) error {
	if err := w.fs.WriteFile(path, []byte(w.formatter.Format(r))); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
