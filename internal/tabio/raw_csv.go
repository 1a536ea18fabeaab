package tabio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/normalize"
)

const readBufSize = 256 * 1024

// ReadRaw reads the raw insurance CSV into untyped rows. The header is
// canonicalized (trim, lowercase, spaces to underscores) and checked
// against the required raw column set; extra columns are ignored.
func ReadRaw(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, readBufSize))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[normalize.ColumnName(h)] = i
	}

	var missing []string
	for _, col := range model.RawColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	var rows []model.RawRow
	var line int64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		cell := func(col string) string {
			i := colIdx[col]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		rows = append(rows, model.RawRow{
			Line:     line,
			Age:      cell("age"),
			Sex:      cell("sex"),
			BMI:      cell("bmi"),
			Children: cell("children"),
			Smoker:   cell("smoker"),
			Region:   cell("region"),
			Charges:  cell("charges"),
		})
	}
	return rows, nil
}
