package tabio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gyeh/insurancedw/internal/model"
)

// WriteCubeCSV serializes cube cells as CSV, atomically. Callers are
// expected to pass cells already in their deterministic output order.
func WriteCubeCSV(path string, cells []model.CubeCell) error {
	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(model.CubeColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i := range cells {
			c := &cells[i]
			row := []string{
				c.AgeGroup,
				strconv.FormatBool(c.SmokerFlag),
				c.Region,
				c.BMICategory,
				strconv.FormatFloat(c.ChargesSum, 'f', -1, 64),
				strconv.FormatFloat(c.ChargesAvg, 'f', -1, 64),
				strconv.FormatInt(c.ChargesCount, 10),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write cell %d: %w", i+1, err)
			}
		}
		w.Flush()
		return w.Error()
	})
}
