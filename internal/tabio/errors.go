package tabio

import (
	"fmt"
	"strings"
)

// SchemaError reports columns missing from an input file's header.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// RowError reports a data row whose value could not be coerced to the
// column's expected type.
type RowError struct {
	Row    int64 // 1-based data row number, header excluded
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
