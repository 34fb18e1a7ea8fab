package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"remit-analytics/internal/analytics"
	"remit-analytics/internal/reporting"
	"remit-analytics/internal/storage"
)

// Output file names written by Run.
const (
	MarketCSVFile   = "market_performance.csv"
	CorridorCSVFile = "transaction_revenue.csv"
	CohortCSVFile   = "user_acquisition.csv"
	ReportFile      = "REPORT.md"
)

// Runner orchestrates the full analytics run: compute and persist the three
// metric tables, then render the CSV and Markdown outputs.
type Runner struct {
	aggregator *analytics.Aggregator
	reportGen  *reporting.Generator
	outputDir  string
	clock      func() time.Time
}

// NewRunner creates a new pipeline runner over the given stores.
func NewRunner(
	users storage.UserStore,
	verifications storage.VerificationStore,
	transactions storage.TransactionStore,
	paymentMethods storage.PaymentMethodStore,
	rates storage.ExchangeRateStore,
	fees storage.TransactionFeeStore,
	marketStore storage.MarketMetricStore,
	corridorStore storage.CorridorMetricStore,
	cohortStore storage.CohortMetricStore,
	outputDir string,
) *Runner {
	return &Runner{
		aggregator: analytics.NewAggregator(
			users, verifications, transactions, paymentMethods, rates, fees,
			marketStore, corridorStore, cohortStore,
		),
		reportGen: reporting.NewGenerator(
			users, verifications, transactions,
			marketStore, corridorStore, cohortStore,
		),
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (r *Runner) WithClock(clock func() time.Time) *Runner {
	r.clock = clock
	r.reportGen = r.reportGen.WithClock(clock)
	return r
}

// Run executes the full pipeline and writes output files:
// - market_performance.csv
// - transaction_revenue.csv
// - user_acquisition.csv
// - REPORT.md
// Re-running over an unchanged snapshot (with a fixed clock) yields
// byte-identical files.
func (r *Runner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return err
	}

	if err := r.aggregator.ComputeAndStoreAll(ctx); err != nil {
		return err
	}

	report, err := r.reportGen.Generate(ctx, r.aggregator.Segments, r.aggregator.QualityNotes())
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		content string
	}{
		{MarketCSVFile, reporting.RenderMarketCSV(report.Market)},
		{CorridorCSVFile, reporting.RenderCorridorCSV(report.Corridors)},
		{CohortCSVFile, reporting.RenderCohortCSV(report.Cohorts)},
		{ReportFile, reporting.RenderMarkdown(report)},
	}
	for _, f := range files {
		path := filepath.Join(r.outputDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return err
		}
	}

	return nil
}
