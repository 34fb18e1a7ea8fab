package postgres

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (
		id, user_id, initiated_at, status,
		source_currency, destination_currency,
		source_amount, fee_amount, revenue_usd, payment_method_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

const selectTransactionColumns = `
	SELECT id, user_id, initiated_at, status,
	       source_currency, destination_currency,
	       source_amount, fee_amount, revenue_usd, payment_method_id
	FROM transactions
`

// Insert adds a new transaction. Returns ErrDuplicateKey if the id exists.
func (s *TransactionStore) Insert(ctx context.Context, t *domain.Transaction) error {
	_, err := s.pool.Exec(ctx, insertTransactionQuery,
		t.ID, t.UserID, t.InitiatedAt, t.Status,
		t.SourceCurrency, t.DestinationCurrency,
		t.SourceAmount, t.FeeAmount, t.RevenueUSD, t.PaymentMethodID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// InsertBulk adds multiple transactions atomically. Fails entire batch on any duplicate.
func (s *TransactionStore) InsertBulk(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx)

	for _, t := range txs {
		_, err := dbTx.Exec(ctx, insertTransactionQuery,
			t.ID, t.UserID, t.InitiatedAt, t.Status,
			t.SourceCurrency, t.DestinationCurrency,
			t.SourceAmount, t.FeeAmount, t.RevenueUSD, t.PaymentMethodID,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert transaction in bulk: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by id. Returns ErrNotFound if not exists.
func (s *TransactionStore) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.pool.QueryRow(ctx, selectTransactionColumns+` WHERE id = $1`, id).Scan(
		&t.ID, &t.UserID, &t.InitiatedAt, &t.Status,
		&t.SourceCurrency, &t.DestinationCurrency,
		&t.SourceAmount, &t.FeeAmount, &t.RevenueUSD, &t.PaymentMethodID,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return &t, nil
}

// GetByUserID retrieves all transactions for a user, ordered by initiated_at ASC, id ASC.
func (s *TransactionStore) GetByUserID(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	return s.queryMany(ctx, selectTransactionColumns+` WHERE user_id = $1 ORDER BY initiated_at ASC, id ASC`, userID)
}

// GetAll retrieves all transactions ordered by initiated_at ASC, id ASC.
func (s *TransactionStore) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	return s.queryMany(ctx, selectTransactionColumns+` ORDER BY initiated_at ASC, id ASC`)
}

func (s *TransactionStore) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.InitiatedAt, &t.Status,
			&t.SourceCurrency, &t.DestinationCurrency,
			&t.SourceAmount, &t.FeeAmount, &t.RevenueUSD, &t.PaymentMethodID,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}
