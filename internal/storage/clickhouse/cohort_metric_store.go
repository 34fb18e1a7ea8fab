package clickhouse

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// CohortMetricStore implements storage.CohortMetricStore using ClickHouse.
type CohortMetricStore struct {
	conn *Conn
}

// NewCohortMetricStore creates a new CohortMetricStore.
func NewCohortMetricStore(conn *Conn) *CohortMetricStore {
	return &CohortMetricStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CohortMetricStore = (*CohortMetricStore)(nil)

const insertCohortMetricQuery = `
	INSERT INTO cohort_metrics (
		acquisition_month, country_code, acquisition_channel, verification_level,
		cohort_size, activated_users,
		activation_rate, avg_days_to_activation,
		funnel_health
	)
`

// InsertBulk adds metric rows. Fails entire batch on a duplicate cohort key.
// ClickHouse MergeTree does not enforce uniqueness, so duplicates are
// detected with an explicit existence check before inserting.
func (s *CohortMetricStore) InsertBulk(ctx context.Context, metrics []*domain.CohortMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		key := fmt.Sprintf("%s|%s|%s|%d",
			m.AcquisitionMonth.UTC().Format("2006-01"),
			m.CountryCode, m.AcquisitionChannel, m.VerificationLevel)
		if _, exists := seen[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, m := range metrics {
		exists, err := s.exists(ctx, m)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, insertCohortMetricQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, m := range metrics {
		err = batch.Append(
			m.AcquisitionMonth, m.CountryCode, m.AcquisitionChannel, int64(m.VerificationLevel),
			int64(m.CohortSize), int64(m.ActivatedUsers),
			m.ActivationRate, m.AvgDaysToActivation,
			m.FunnelHealth,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (s *CohortMetricStore) exists(ctx context.Context, m *domain.CohortMetric) (bool, error) {
	query := `
		SELECT count() FROM cohort_metrics
		WHERE acquisition_month = ? AND country_code = ?
		  AND acquisition_channel = ? AND verification_level = ?
	`
	var count uint64
	err := s.conn.QueryRow(ctx, query,
		m.AcquisitionMonth, m.CountryCode, m.AcquisitionChannel, m.VerificationLevel,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAll retrieves all rows ordered by acquisition_month ASC,
// activation_rate DESC with NULLs last, then country_code, channel, level.
func (s *CohortMetricStore) GetAll(ctx context.Context) ([]*domain.CohortMetric, error) {
	query := `
		SELECT acquisition_month, country_code, acquisition_channel, verification_level,
		       cohort_size, activated_users,
		       activation_rate, avg_days_to_activation,
		       funnel_health
		FROM cohort_metrics
		ORDER BY acquisition_month ASC, activation_rate DESC NULLS LAST,
		         country_code ASC, acquisition_channel ASC, verification_level ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cohort metrics: %w", err)
	}
	defer rows.Close()

	var result []*domain.CohortMetric
	for rows.Next() {
		var (
			m                     domain.CohortMetric
			level                 int64
			cohortSize, activated int64
		)
		if err := rows.Scan(
			&m.AcquisitionMonth, &m.CountryCode, &m.AcquisitionChannel, &level,
			&cohortSize, &activated,
			&m.ActivationRate, &m.AvgDaysToActivation,
			&m.FunnelHealth,
		); err != nil {
			return nil, fmt.Errorf("scan cohort metric: %w", err)
		}
		m.VerificationLevel = int(level)
		m.CohortSize = int(cohortSize)
		m.ActivatedUsers = int(activated)
		m.AcquisitionMonth = m.AcquisitionMonth.UTC()
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cohort metrics: %w", err)
	}
	return result, nil
}
