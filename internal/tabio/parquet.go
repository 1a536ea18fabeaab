package tabio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/insurancedw/internal/model"
)

// WritePreparedParquet serializes prepared records as Parquet, atomically.
func WritePreparedParquet(path string, recs []model.PreparedRecord) error {
	return writeAtomic(path, func(f *os.File) error {
		w := parquet.NewGenericWriter[model.PreparedRecord](f)
		if _, err := w.Write(recs); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("close parquet writer: %w", err)
		}
		return nil
	})
}

// readPreparedParquet reads a prepared Parquet file back into records.
func readPreparedParquet(path string) ([]model.PreparedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prepared file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat prepared file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.PreparedRecord](pf)
	defer r.Close()

	recs := make([]model.PreparedRecord, 0, r.NumRows())
	buf := make([]model.PreparedRecord, 256)
	for {
		n, readErr := r.Read(buf)
		recs = append(recs, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return recs, nil
}
