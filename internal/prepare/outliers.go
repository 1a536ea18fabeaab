package prepare

import (
	"sort"

	"github.com/gyeh/insurancedw/internal/model"
)

// iqrMultiplier is deliberately wide so only extreme charges are
// removed; high-cost patients are the interesting part of the data.
const iqrMultiplier = 3.0

// dropOutliers removes rows whose charges fall outside
// [Q1 - 3*IQR, Q3 + 3*IQR]. Quantiles use linear interpolation.
func dropOutliers(recs []model.PreparedRecord) (kept []model.PreparedRecord, removed int64) {
	if len(recs) < 4 {
		return recs, 0
	}

	charges := make([]float64, len(recs))
	for i := range recs {
		charges[i] = recs[i].Charges
	}
	sort.Float64s(charges)

	q1 := quantile(charges, 0.25)
	q3 := quantile(charges, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	kept = recs[:0]
	for _, rec := range recs {
		if rec.Charges < lower || rec.Charges > upper {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, removed
}

// quantile returns the q-th quantile of sorted values, interpolating
// linearly between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
