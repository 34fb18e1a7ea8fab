package clickhouse

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// CorridorMetricStore implements storage.CorridorMetricStore using ClickHouse.
type CorridorMetricStore struct {
	conn *Conn
}

// NewCorridorMetricStore creates a new CorridorMetricStore.
func NewCorridorMetricStore(conn *Conn) *CorridorMetricStore {
	return &CorridorMetricStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CorridorMetricStore = (*CorridorMetricStore)(nil)

const insertCorridorMetricQuery = `
	INSERT INTO corridor_month_metrics (
		currency_pair, month,
		transaction_count, unique_users,
		total_volume_usd, total_converted_usd, total_fees_usd, total_revenue_usd,
		avg_transaction_usd, effective_fee_rate,
		configured_fee_type, configured_fee_value,
		pricing_recommendation
	)
`

// InsertBulk adds metric rows. Fails entire batch on duplicate (currency_pair, month).
// ClickHouse MergeTree does not enforce uniqueness, so duplicates are
// detected with an explicit existence check before inserting.
func (s *CorridorMetricStore) InsertBulk(ctx context.Context, metrics []*domain.CorridorMonthMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		key := m.CurrencyPair + "|" + m.Month.UTC().Format("2006-01")
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

	batch, err := s.conn.PrepareBatch(ctx, insertCorridorMetricQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, m := range metrics {
		err = batch.Append(
			m.CurrencyPair, m.Month,
			int64(m.TransactionCount), int64(m.UniqueUsers),
			m.TotalVolumeUSD, m.TotalConvertedUSD, m.TotalFeesUSD, m.TotalRevenueUSD,
			m.AvgTransactionUSD, m.EffectiveFeeRate,
			m.ConfiguredFeeType, m.ConfiguredFeeValue,
			m.PricingRecommendation,
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

func (s *CorridorMetricStore) exists(ctx context.Context, m *domain.CorridorMonthMetric) (bool, error) {
	query := `
		SELECT count() FROM corridor_month_metrics
		WHERE currency_pair = ? AND month = ?
	`
	var count uint64
	if err := s.conn.QueryRow(ctx, query, m.CurrencyPair, m.Month).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAll retrieves all rows ordered by month ASC, total_fees_usd DESC,
// currency_pair ASC.
func (s *CorridorMetricStore) GetAll(ctx context.Context) ([]*domain.CorridorMonthMetric, error) {
	query := `
		SELECT currency_pair, month,
		       transaction_count, unique_users,
		       total_volume_usd, total_converted_usd, total_fees_usd, total_revenue_usd,
		       avg_transaction_usd, effective_fee_rate,
		       configured_fee_type, configured_fee_value,
		       pricing_recommendation
		FROM corridor_month_metrics
		ORDER BY month ASC, total_fees_usd DESC, currency_pair ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query corridor metrics: %w", err)
	}
	defer rows.Close()

	var result []*domain.CorridorMonthMetric
	for rows.Next() {
		var (
			m                    domain.CorridorMonthMetric
			txCount, uniqueUsers int64
		)
		if err := rows.Scan(
			&m.CurrencyPair, &m.Month,
			&txCount, &uniqueUsers,
			&m.TotalVolumeUSD, &m.TotalConvertedUSD, &m.TotalFeesUSD, &m.TotalRevenueUSD,
			&m.AvgTransactionUSD, &m.EffectiveFeeRate,
			&m.ConfiguredFeeType, &m.ConfiguredFeeValue,
			&m.PricingRecommendation,
		); err != nil {
			return nil, fmt.Errorf("scan corridor metric: %w", err)
		}
		m.TransactionCount = int(txCount)
		m.UniqueUsers = int(uniqueUsers)
		m.Month = m.Month.UTC()
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corridor metrics: %w", err)
	}
	return result, nil
}
