package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage/memory"
)

type generatorStores struct {
	users         *memory.UserStore
	verifications *memory.VerificationStore
	transactions  *memory.TransactionStore
	market        *memory.MarketMetricStore
	corridor      *memory.CorridorMetricStore
	cohort        *memory.CohortMetricStore
}

func seedGeneratorStores(t *testing.T) *generatorStores {
	t.Helper()
	ctx := context.Background()

	s := &generatorStores{
		users:         memory.NewUserStore(),
		verifications: memory.NewVerificationStore(),
		transactions:  memory.NewTransactionStore(),
		market:        memory.NewMarketMetricStore(),
		corridor:      memory.NewCorridorMetricStore(),
		cohort:        memory.NewCohortMetricStore(),
	}

	if err := s.users.InsertBulk(ctx, []*domain.User{
		{ID: 11, RegistrationDate: month(2024, 1), CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 12, RegistrationDate: month(2024, 1), CountryCode: "GB", AcquisitionChannel: "referral"},
	}); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if err := s.verifications.InsertBulk(ctx, []*domain.UserVerification{
		{UserID: 11, KYCStatus: domain.KYCApproved, VerificationLevel: 2},
	}); err != nil {
		t.Fatalf("seed verifications: %v", err)
	}
	if err := s.transactions.InsertBulk(ctx, []*domain.Transaction{
		{ID: 101, UserID: 11, InitiatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN",
			SourceAmount: 10000, FeeAmount: 300, RevenueUSD: 2},
		{ID: 102, UserID: 12, InitiatedAt: time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC),
			Status: domain.StatusFailed, SourceCurrency: "GBP", DestinationCurrency: "INR",
			SourceAmount: 50000},
	}); err != nil {
		t.Fatalf("seed transactions: %v", err)
	}
	if err := s.market.InsertBulk(ctx, []*domain.MarketMonthMetric{
		{CountryCode: "US", ReportMonth: month(2024, 1), TotalUsers: 1,
			GrowthCategory: domain.GrowthStable, InvestmentPriority: domain.CoreMarket},
	}); err != nil {
		t.Fatalf("seed market metrics: %v", err)
	}
	if err := s.corridor.InsertBulk(ctx, []*domain.CorridorMonthMetric{
		{CurrencyPair: "USD/MXN", Month: month(2024, 1), TransactionCount: 1, UniqueUsers: 1,
			TotalVolumeUSD: 100, TotalFeesUSD: 3, TotalRevenueUSD: 2,
			PricingRecommendation: domain.PricingOptimal},
	}); err != nil {
		t.Fatalf("seed corridor metrics: %v", err)
	}
	if err := s.cohort.InsertBulk(ctx, []*domain.CohortMetric{
		{AcquisitionMonth: month(2024, 1), CountryCode: "US", AcquisitionChannel: "organic",
			VerificationLevel: 2, CohortSize: 1, ActivatedUsers: 1,
			ActivationRate: fp(100), AvgDaysToActivation: fp(9), FunnelHealth: domain.FunnelStrong},
	}); err != nil {
		t.Fatalf("seed cohort metrics: %v", err)
	}

	return s
}

func (s *generatorStores) newGenerator() *Generator {
	return NewGenerator(s.users, s.verifications, s.transactions, s.market, s.corridor, s.cohort)
}

func TestGeneratorGenerate(t *testing.T) {
	ctx := context.Background()
	stores := seedGeneratorStores(t)

	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	gen := stores.newGenerator().WithClock(func() time.Time { return fixed })

	segments := []*domain.SegmentSummary{
		{Segment: domain.SegmentOccasional, UserCount: 1, TotalValueUSD: 100},
		{Segment: domain.SegmentDormant, UserCount: 1},
	}
	notes := []string{"1 completed transaction(s) dropped from revenue metrics: no same-day exchange rate"}

	report, err := gen.Generate(ctx, segments, notes)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !report.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %v, want %v", report.GeneratedAt, fixed)
	}
	if len(report.SnapshotID) != 64 {
		t.Errorf("snapshot id length = %d, want 64 hex characters", len(report.SnapshotID))
	}

	ds := report.DataSummary
	if ds.TotalUsers != 2 || ds.TotalVerifications != 1 || ds.TotalTransactions != 2 {
		t.Errorf("summary counts = %d/%d/%d, want 2/1/2",
			ds.TotalUsers, ds.TotalVerifications, ds.TotalTransactions)
	}
	if ds.CompletedTransactions != 1 {
		t.Errorf("completed transactions = %d, want 1", ds.CompletedTransactions)
	}
	if ds.Countries != 2 || ds.Corridors != 1 {
		t.Errorf("countries/corridors = %d/%d, want 2/1", ds.Countries, ds.Corridors)
	}
	if !ds.DateRangeStart.Equal(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("date range start = %v", ds.DateRangeStart)
	}
	if !ds.DateRangeEnd.Equal(time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("date range end = %v", ds.DateRangeEnd)
	}

	if len(report.Market) != 1 || len(report.Corridors) != 1 || len(report.Cohorts) != 1 {
		t.Errorf("report tables = %d/%d/%d rows, want 1/1/1",
			len(report.Market), len(report.Corridors), len(report.Cohorts))
	}
	if len(report.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(report.Segments))
	}

	// The same snapshot always yields the same identifier.
	second, err := stores.newGenerator().WithClock(func() time.Time { return fixed }).Generate(ctx, segments, notes)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if second.SnapshotID != report.SnapshotID {
		t.Errorf("snapshot id changed between runs: %s vs %s", report.SnapshotID, second.SnapshotID)
	}
}

func TestRenderMarkdown(t *testing.T) {
	ctx := context.Background()
	stores := seedGeneratorStores(t)

	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	gen := stores.newGenerator().WithClock(func() time.Time { return fixed })

	report, err := gen.Generate(ctx,
		[]*domain.SegmentSummary{{Segment: domain.SegmentOccasional, UserCount: 1, TotalValueUSD: 100}},
		nil,
	)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Transfer Analytics Report",
		"Generated: 2024-03-01T10:00:00Z",
		"Snapshot: `" + report.SnapshotID + "`",
		"## Data Summary",
		"| Total Users | 2 |",
		"No rows excluded or dropped.",
		"## Market Performance",
		"| US | 2024-01 |",
		"## Transaction Revenue",
		"| USD/MXN | 2024-01 |",
		"## User Segments",
		"| Occasional | 1 | 100.00 |",
		"## User Acquisition",
		"| 2024-01 | US | organic | 2 | 1 | 1 | 100.00 | 9.00 | Strong |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Nil approval rate shows as a dash, not a zero.
	if !strings.Contains(md, "| - | - | - | Stable | Core Market |") {
		t.Error("markdown should render nil market ratios as dashes")
	}
}

func TestRenderMarkdownEmptyTables(t *testing.T) {
	report := &Report{
		GeneratedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SnapshotID:  strings.Repeat("0", 64),
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"No market metrics available.",
		"No corridor metrics available.",
		"No segmentation data available.",
		"No cohort metrics available.",
		"No rows excluded or dropped.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
