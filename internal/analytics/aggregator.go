package analytics

import (
	"context"
	"errors"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// ErrEmptySnapshot is returned when the snapshot contains no users.
var ErrEmptySnapshot = errors.New("snapshot contains no users")

// Aggregator runs the three analytical pipelines over a snapshot and
// persists the derived metric tables.
type Aggregator struct {
	users          storage.UserStore
	verifications  storage.VerificationStore
	transactions   storage.TransactionStore
	paymentMethods storage.PaymentMethodStore
	rates          storage.ExchangeRateStore
	fees           storage.TransactionFeeStore

	marketStore   storage.MarketMetricStore
	corridorStore storage.CorridorMetricStore
	cohortStore   storage.CohortMetricStore

	// Quality counters are populated by ComputeAndStoreAll.
	Quality DataQuality

	// Segments is the user segmentation summary from the revenue pipeline,
	// kept in memory for the report (not persisted).
	Segments []*domain.SegmentSummary
}

// DataQuality tracks rows excluded by the filter stages. The counts are
// reported, never silently discarded.
type DataQuality struct {
	TestUsersExcluded       int
	UnverifiedUsersExcluded int
	TransactionsWithoutRate int
}

// NewAggregator creates a new pipeline aggregator.
func NewAggregator(
	users storage.UserStore,
	verifications storage.VerificationStore,
	transactions storage.TransactionStore,
	paymentMethods storage.PaymentMethodStore,
	rates storage.ExchangeRateStore,
	fees storage.TransactionFeeStore,
	marketStore storage.MarketMetricStore,
	corridorStore storage.CorridorMetricStore,
	cohortStore storage.CohortMetricStore,
) *Aggregator {
	return &Aggregator{
		users:          users,
		verifications:  verifications,
		transactions:   transactions,
		paymentMethods: paymentMethods,
		rates:          rates,
		fees:           fees,
		marketStore:    marketStore,
		corridorStore:  corridorStore,
		cohortStore:    cohortStore,
	}
}

// snapshot is the point-in-time input to all three pipelines.
type snapshot struct {
	users          []*domain.User
	verifications  []*domain.UserVerification
	transactions   []*domain.Transaction
	paymentMethods []*domain.PaymentMethod
	rates          []*domain.ExchangeRate
	fees           []*domain.TransactionFee
}

func (a *Aggregator) loadSnapshot(ctx context.Context) (*snapshot, error) {
	var (
		s   snapshot
		err error
	)
	if s.users, err = a.users.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if s.verifications, err = a.verifications.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load verifications: %w", err)
	}
	if s.transactions, err = a.transactions.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if s.paymentMethods, err = a.paymentMethods.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load payment methods: %w", err)
	}
	if s.rates, err = a.rates.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load exchange rates: %w", err)
	}
	if s.fees, err = a.fees.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load transaction fees: %w", err)
	}
	return &s, nil
}

// ComputeAndStoreAll loads the snapshot, runs the market, revenue and
// acquisition pipelines, and persists the three metric tables.
// Returns ErrEmptySnapshot when there are no users to analyze.
func (a *Aggregator) ComputeAndStoreAll(ctx context.Context) error {
	s, err := a.loadSnapshot(ctx)
	if err != nil {
		return err
	}
	if len(s.users) == 0 {
		return ErrEmptySnapshot
	}

	for _, u := range s.users {
		if u.IsTestUser() {
			a.Quality.TestUsersExcluded++
		}
	}

	market := ComputeMarketMetrics(s.users, s.verifications, s.transactions, s.paymentMethods)
	if err := a.marketStore.InsertBulk(ctx, market); err != nil {
		return fmt.Errorf("store market metrics: %w", err)
	}

	revenue := ComputeRevenueMetrics(s.users, s.transactions, s.rates, s.fees)
	a.Quality.TransactionsWithoutRate = revenue.DroppedNoRate
	a.Segments = revenue.Segments
	if err := a.corridorStore.InsertBulk(ctx, revenue.Corridors); err != nil {
		return fmt.Errorf("store corridor metrics: %w", err)
	}

	records, unverified := BuildActivationRecords(s.users, s.verifications, s.transactions)
	a.Quality.UnverifiedUsersExcluded = unverified
	cohorts := ComputeCohortMetrics(records)
	if err := a.cohortStore.InsertBulk(ctx, cohorts); err != nil {
		return fmt.Errorf("store cohort metrics: %w", err)
	}

	return nil
}

// QualityNotes returns human-readable data quality lines for the report.
func (a *Aggregator) QualityNotes() []string {
	var notes []string
	if a.Quality.TestUsersExcluded > 0 {
		notes = append(notes, fmt.Sprintf("%d test user(s) excluded (id <= %d)",
			a.Quality.TestUsersExcluded, domain.TestUserMaxID))
	}
	if a.Quality.UnverifiedUsersExcluded > 0 {
		notes = append(notes, fmt.Sprintf("%d user(s) excluded from acquisition metrics: no approved verification",
			a.Quality.UnverifiedUsersExcluded))
	}
	if a.Quality.TransactionsWithoutRate > 0 {
		notes = append(notes, fmt.Sprintf("%d completed transaction(s) dropped from revenue metrics: no same-day exchange rate",
			a.Quality.TransactionsWithoutRate))
	}
	return notes
}
