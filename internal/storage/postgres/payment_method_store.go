package postgres

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// PaymentMethodStore implements storage.PaymentMethodStore using PostgreSQL.
type PaymentMethodStore struct {
	pool *Pool
}

// NewPaymentMethodStore creates a new PaymentMethodStore.
func NewPaymentMethodStore(pool *Pool) *PaymentMethodStore {
	return &PaymentMethodStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PaymentMethodStore = (*PaymentMethodStore)(nil)

const insertPaymentMethodQuery = `
	INSERT INTO payment_methods (id, method_name, country_code, is_active)
	VALUES ($1, $2, $3, $4)
`

// Insert adds a payment method. Returns ErrDuplicateKey if the id exists.
func (s *PaymentMethodStore) Insert(ctx context.Context, m *domain.PaymentMethod) error {
	_, err := s.pool.Exec(ctx, insertPaymentMethodQuery,
		m.ID, m.MethodName, m.CountryCode, m.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// InsertBulk adds multiple methods atomically. Fails entire batch on any duplicate.
func (s *PaymentMethodStore) InsertBulk(ctx context.Context, methods []*domain.PaymentMethod) error {
	if len(methods) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range methods {
		_, err := tx.Exec(ctx, insertPaymentMethodQuery,
			m.ID, m.MethodName, m.CountryCode, m.IsActive,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert payment method in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a payment method by id. Returns ErrNotFound if not exists.
func (s *PaymentMethodStore) GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, method_name, country_code, is_active
		FROM payment_methods
		WHERE id = $1
	`

	var m domain.PaymentMethod
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.MethodName, &m.CountryCode, &m.IsActive,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get payment method by id: %w", err)
	}
	return &m, nil
}

// GetAll retrieves all payment methods ordered by id ASC.
func (s *PaymentMethodStore) GetAll(ctx context.Context) ([]*domain.PaymentMethod, error) {
	query := `
		SELECT id, method_name, country_code, is_active
		FROM payment_methods
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query payment methods: %w", err)
	}
	defer rows.Close()

	var result []*domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.MethodName, &m.CountryCode, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment methods: %w", err)
	}
	return result, nil
}
