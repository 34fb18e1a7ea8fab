package postgres

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// TransactionFeeStore implements storage.TransactionFeeStore using PostgreSQL.
type TransactionFeeStore struct {
	pool *Pool
}

// NewTransactionFeeStore creates a new TransactionFeeStore.
func NewTransactionFeeStore(pool *Pool) *TransactionFeeStore {
	return &TransactionFeeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionFeeStore = (*TransactionFeeStore)(nil)

const insertTransactionFeeQuery = `
	INSERT INTO transaction_fees (
		currency_pair, fee_type, fee_value, minimum_fee, maximum_fee, is_active
	) VALUES ($1, $2, $3, $4, $5, $6)
`

// Insert adds a fee structure. Returns ErrDuplicateKey if (currency_pair, fee_type) exists.
func (s *TransactionFeeStore) Insert(ctx context.Context, f *domain.TransactionFee) error {
	_, err := s.pool.Exec(ctx, insertTransactionFeeQuery,
		f.CurrencyPair, f.FeeType, f.FeeValue, f.MinimumFee, f.MaximumFee, f.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction fee: %w", err)
	}
	return nil
}

// InsertBulk adds multiple fee structures atomically. Fails entire batch on any duplicate.
func (s *TransactionFeeStore) InsertBulk(ctx context.Context, fees []*domain.TransactionFee) error {
	if len(fees) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, f := range fees {
		_, err := tx.Exec(ctx, insertTransactionFeeQuery,
			f.CurrencyPair, f.FeeType, f.FeeValue, f.MinimumFee, f.MaximumFee, f.IsActive,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert transaction fee in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetActiveByPair retrieves the active fee structure for a corridor.
// Returns ErrNotFound if none is active. If several are active the lowest
// fee_type lexically wins, matching the in-memory store.
func (s *TransactionFeeStore) GetActiveByPair(ctx context.Context, currencyPair string) (*domain.TransactionFee, error) {
	query := `
		SELECT currency_pair, fee_type, fee_value, minimum_fee, maximum_fee, is_active
		FROM transaction_fees
		WHERE currency_pair = $1 AND is_active
		ORDER BY fee_type ASC
		LIMIT 1
	`

	var f domain.TransactionFee
	err := s.pool.QueryRow(ctx, query, currencyPair).Scan(
		&f.CurrencyPair, &f.FeeType, &f.FeeValue, &f.MinimumFee, &f.MaximumFee, &f.IsActive,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get active fee: %w", err)
	}
	return &f, nil
}

// GetAll retrieves all fee structures ordered by currency_pair ASC, fee_type ASC.
func (s *TransactionFeeStore) GetAll(ctx context.Context) ([]*domain.TransactionFee, error) {
	query := `
		SELECT currency_pair, fee_type, fee_value, minimum_fee, maximum_fee, is_active
		FROM transaction_fees
		ORDER BY currency_pair ASC, fee_type ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transaction fees: %w", err)
	}
	defer rows.Close()

	var result []*domain.TransactionFee
	for rows.Next() {
		var f domain.TransactionFee
		if err := rows.Scan(
			&f.CurrencyPair, &f.FeeType, &f.FeeValue, &f.MinimumFee, &f.MaximumFee, &f.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan transaction fee: %w", err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction fees: %w", err)
	}
	return result, nil
}
