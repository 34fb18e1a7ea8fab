package postgres

import (
	"context"
	"fmt"
	"time"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// ExchangeRateStore implements storage.ExchangeRateStore using PostgreSQL.
type ExchangeRateStore struct {
	pool *Pool
}

// NewExchangeRateStore creates a new ExchangeRateStore.
func NewExchangeRateStore(pool *Pool) *ExchangeRateStore {
	return &ExchangeRateStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ExchangeRateStore = (*ExchangeRateStore)(nil)

const insertExchangeRateQuery = `
	INSERT INTO exchange_rates (currency_pair, date_recorded, rate)
	VALUES ($1, $2, $3)
`

// Insert adds a rate. Returns ErrDuplicateKey if (currency_pair, date) exists.
func (s *ExchangeRateStore) Insert(ctx context.Context, r *domain.ExchangeRate) error {
	_, err := s.pool.Exec(ctx, insertExchangeRateQuery,
		r.CurrencyPair, r.DateRecorded, r.Rate,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert exchange rate: %w", err)
	}
	return nil
}

// InsertBulk adds multiple rates atomically. Fails entire batch on any duplicate.
func (s *ExchangeRateStore) InsertBulk(ctx context.Context, rates []*domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range rates {
		_, err := tx.Exec(ctx, insertExchangeRateQuery,
			r.CurrencyPair, r.DateRecorded, r.Rate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert exchange rate in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByPairDate retrieves the rate for an exact (currency_pair, date) match.
func (s *ExchangeRateStore) GetByPairDate(ctx context.Context, currencyPair string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT currency_pair, date_recorded, rate
		FROM exchange_rates
		WHERE currency_pair = $1 AND date_recorded = $2
	`

	var r domain.ExchangeRate
	err := s.pool.QueryRow(ctx, query, currencyPair, date).Scan(
		&r.CurrencyPair, &r.DateRecorded, &r.Rate,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	return &r, nil
}

// GetAll retrieves all rates ordered by currency_pair ASC, date ASC.
func (s *ExchangeRateStore) GetAll(ctx context.Context) ([]*domain.ExchangeRate, error) {
	query := `
		SELECT currency_pair, date_recorded, rate
		FROM exchange_rates
		ORDER BY currency_pair ASC, date_recorded ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query exchange rates: %w", err)
	}
	defer rows.Close()

	var result []*domain.ExchangeRate
	for rows.Next() {
		var r domain.ExchangeRate
		if err := rows.Scan(&r.CurrencyPair, &r.DateRecorded, &r.Rate); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange rates: %w", err)
	}
	return result, nil
}
