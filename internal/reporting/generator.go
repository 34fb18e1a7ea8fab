package reporting

import (
	"context"
	"time"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/idhash"
	"remit-analytics/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	users         storage.UserStore
	verifications storage.VerificationStore
	transactions  storage.TransactionStore

	marketStore   storage.MarketMetricStore
	corridorStore storage.CorridorMetricStore
	cohortStore   storage.CohortMetricStore

	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	users storage.UserStore,
	verifications storage.VerificationStore,
	transactions storage.TransactionStore,
	marketStore storage.MarketMetricStore,
	corridorStore storage.CorridorMetricStore,
	cohortStore storage.CohortMetricStore,
) *Generator {
	return &Generator{
		users:         users,
		verifications: verifications,
		transactions:  transactions,
		marketStore:   marketStore,
		corridorStore: corridorStore,
		cohortStore:   cohortStore,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles the combined report. Segments and quality notes come
// from the aggregator run; the metric tables are read back from storage in
// their contract sort orders.
func (g *Generator) Generate(ctx context.Context, segments []*domain.SegmentSummary, qualityNotes []string) (*Report, error) {
	market, err := g.marketStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	corridors, err := g.corridorStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	cohorts, err := g.cohortStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary, snapshotID, err := g.generateDataSummary(ctx, corridors)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt:  g.now(),
		SnapshotID:   snapshotID,
		DataSummary:  *summary,
		QualityNotes: qualityNotes,
		Market:       market,
		Corridors:    corridors,
		Cohorts:      cohorts,
		Segments:     segments,
	}, nil
}

// generateDataSummary computes snapshot counts, date range and snapshot ID.
func (g *Generator) generateDataSummary(ctx context.Context, corridors []*domain.CorridorMonthMetric) (*DataSummary, string, error) {
	users, err := g.users.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}
	verifications, err := g.verifications.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}
	transactions, err := g.transactions.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	countries := make(map[string]struct{})
	for _, u := range users {
		countries[u.CountryCode] = struct{}{}
	}

	pairs := make(map[string]struct{})
	for _, c := range corridors {
		pairs[c.CurrencyPair] = struct{}{}
	}

	summary := &DataSummary{
		TotalUsers:         len(users),
		TotalVerifications: len(verifications),
		TotalTransactions:  len(transactions),
		Countries:          len(countries),
		Corridors:          len(pairs),
	}

	for _, t := range transactions {
		if t.Status == domain.StatusCompleted {
			summary.CompletedTransactions++
		}
		if summary.DateRangeStart.IsZero() || t.InitiatedAt.Before(summary.DateRangeStart) {
			summary.DateRangeStart = t.InitiatedAt
		}
		if t.InitiatedAt.After(summary.DateRangeEnd) {
			summary.DateRangeEnd = t.InitiatedAt
		}
	}

	snapshotID := idhash.ComputeSnapshotID(
		len(users), len(verifications), len(transactions),
		summary.DateRangeStart, summary.DateRangeEnd,
	)

	return summary, snapshotID, nil
}
