package prepare

import "github.com/gyeh/insurancedw/internal/model"

// dedupe removes rows that are exact duplicates across all columns,
// derived ones included, keeping the first occurrence and preserving
// the surviving rows' order. PreparedRecord is comparable, so the seen
// set keys on the whole record.
func dedupe(recs []model.PreparedRecord) (kept []model.PreparedRecord, removed int64) {
	seen := make(map[model.PreparedRecord]struct{}, len(recs))
	kept = recs[:0]
	for _, rec := range recs {
		if _, dup := seen[rec]; dup {
			removed++
			continue
		}
		seen[rec] = struct{}{}
		kept = append(kept, rec)
	}
	return kept, removed
}
