package tabio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/normalize"
)

// WritePreparedCSV serializes prepared records as CSV, atomically.
func WritePreparedCSV(path string, recs []model.PreparedRecord) error {
	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(model.PreparedColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i := range recs {
			rec := &recs[i]
			row := []string{
				strconv.Itoa(rec.Age),
				rec.Sex,
				strconv.FormatFloat(rec.BMI, 'f', -1, 64),
				strconv.Itoa(rec.Children),
				rec.Smoker,
				rec.Region,
				strconv.FormatFloat(rec.Charges, 'f', -1, 64),
				rec.AgeGroup,
				rec.BMICategory,
				strconv.FormatBool(rec.SmokerFlag),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
		w.Flush()
		return w.Error()
	})
}

// readPreparedCSV parses a prepared CSV back into typed records.
// All prepared columns are required; the file is rejected on the first
// value that fails to parse, since prepared files are produced by this
// pipeline and should never contain bad values.
func readPreparedCSV(path string) ([]model.PreparedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prepared file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, readBufSize))

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[normalize.ColumnName(h)] = i
	}
	var missing []string
	for _, col := range model.PreparedColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	var recs []model.PreparedRecord
	var line int64
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		rec, err := parsePreparedRow(row, colIdx, line)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parsePreparedRow(row []string, colIdx map[string]int, line int64) (model.PreparedRecord, error) {
	var rec model.PreparedRecord
	cell := func(col string) string {
		i := colIdx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	age, err := normalize.ParseI64(cell("age"))
	if err != nil {
		return rec, &RowError{Row: line, Column: "age", Err: err}
	}
	bmi, err := normalize.ParseF64(cell("bmi"))
	if err != nil {
		return rec, &RowError{Row: line, Column: "bmi", Err: err}
	}
	children, err := normalize.ParseI64(cell("children"))
	if err != nil {
		return rec, &RowError{Row: line, Column: "children", Err: err}
	}
	charges, err := normalize.ParseF64(cell("charges"))
	if err != nil {
		return rec, &RowError{Row: line, Column: "charges", Err: err}
	}
	flag, err := strconv.ParseBool(cell("smoker_flag"))
	if err != nil {
		return rec, &RowError{Row: line, Column: "smoker_flag", Err: err}
	}

	rec = model.PreparedRecord{
		Age:         int(age),
		Sex:         cell("sex"),
		BMI:         bmi,
		Children:    int(children),
		Smoker:      cell("smoker"),
		Region:      cell("region"),
		Charges:     charges,
		AgeGroup:    cell("age_group"),
		BMICategory: cell("bmi_category"),
		SmokerFlag:  flag,
	}
	return rec, nil
}
