package reporting

import (
	"time"

	"remit-analytics/internal/domain"
)

// Report is the combined output of the three pipelines for one snapshot.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	SnapshotID  string

	// Data Summary
	DataSummary DataSummary

	// Data Quality notes (excluded/dropped row counts); empty means clean.
	QualityNotes []string

	// Pipeline tables, already in their contract sort orders.
	Market    []*domain.MarketMonthMetric
	Corridors []*domain.CorridorMonthMetric
	Cohorts   []*domain.CohortMetric

	// Segments is the per-user segmentation summary (revenue pipeline).
	Segments []*domain.SegmentSummary
}

// DataSummary describes the analyzed snapshot.
type DataSummary struct {
	TotalUsers            int
	TotalVerifications    int
	TotalTransactions     int
	CompletedTransactions int
	Countries             int
	Corridors             int

	// Transaction date range; zero when the snapshot has no transactions.
	DateRangeStart time.Time
	DateRangeEnd   time.Time
}
