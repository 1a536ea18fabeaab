package model

import "time"

// PrepareSummary captures metrics from a single prepare run.
type PrepareSummary struct {
	RawPath       string
	PreparedPath  string
	RowsRead      int64
	RowsMissing   int64 // dropped: required field empty
	RowsRejected  int64 // dropped or fatal: value could not be coerced
	RowsDeduped   int64
	RowsOutliers  int64
	RowsWritten   int64
	DurationRead  time.Duration
	DurationWrite time.Duration
	DurationTotal time.Duration
}

// LoadSummary captures metrics from a single warehouse load run.
type LoadSummary struct {
	PreparedPath  string
	FileSHA256    string
	LoadRunID     string
	RowsRead      int64
	RegionRows    int64
	RiskRows      int64
	AgeRows       int64
	FactRows      int64
	DurationTotal time.Duration
}

// CubeSummary captures metrics from a single cube build.
type CubeSummary struct {
	Source        string // "file" or "warehouse"
	CubePath      string
	RowsRead      int64
	Cells         int64
	TotalCount    int64
	TotalSum      float64
	DurationTotal time.Duration
}
