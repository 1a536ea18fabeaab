package tabio

import (
	"path/filepath"
	"strings"

	"github.com/gyeh/insurancedw/internal/model"
)

// Prepared file formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// FormatFor infers the prepared file format from a path's extension.
// Anything that is not .parquet is treated as CSV.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatCSV
}

// WritePrepared serializes prepared records in the given format.
func WritePrepared(path, format string, recs []model.PreparedRecord) error {
	if format == FormatParquet {
		return WritePreparedParquet(path, recs)
	}
	return WritePreparedCSV(path, recs)
}

// ReadPrepared reads a prepared file, dispatching on its extension.
func ReadPrepared(path string) ([]model.PreparedRecord, error) {
	if FormatFor(path) == FormatParquet {
		return readPreparedParquet(path)
	}
	return readPreparedCSV(path)
}
