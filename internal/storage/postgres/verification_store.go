package postgres

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// VerificationStore implements storage.VerificationStore using PostgreSQL.
type VerificationStore struct {
	pool *Pool
}

// NewVerificationStore creates a new VerificationStore.
func NewVerificationStore(pool *Pool) *VerificationStore {
	return &VerificationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.VerificationStore = (*VerificationStore)(nil)

const insertVerificationQuery = `
	INSERT INTO user_verifications (
		user_id, kyc_status, verification_level,
		monthly_limit_usd, single_transaction_limit_usd
	) VALUES ($1, $2, $3, $4, $5)
`

// Insert adds a verification record. Returns ErrDuplicateKey if user_id exists.
func (s *VerificationStore) Insert(ctx context.Context, v *domain.UserVerification) error {
	_, err := s.pool.Exec(ctx, insertVerificationQuery,
		v.UserID, v.KYCStatus, v.VerificationLevel,
		v.MonthlyLimitUSD, v.SingleTransactionLimitUSD,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *VerificationStore) InsertBulk(ctx context.Context, records []*domain.UserVerification) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, v := range records {
		_, err := tx.Exec(ctx, insertVerificationQuery,
			v.UserID, v.KYCStatus, v.VerificationLevel,
			v.MonthlyLimitUSD, v.SingleTransactionLimitUSD,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert verification in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByUserID retrieves the verification record for a user.
func (s *VerificationStore) GetByUserID(ctx context.Context, userID int64) (*domain.UserVerification, error) {
	query := `
		SELECT user_id, kyc_status, verification_level,
		       monthly_limit_usd, single_transaction_limit_usd
		FROM user_verifications
		WHERE user_id = $1
	`

	var v domain.UserVerification
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&v.UserID, &v.KYCStatus, &v.VerificationLevel,
		&v.MonthlyLimitUSD, &v.SingleTransactionLimitUSD,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get verification by user id: %w", err)
	}
	return &v, nil
}

// GetAll retrieves all verification records ordered by user_id ASC.
func (s *VerificationStore) GetAll(ctx context.Context) ([]*domain.UserVerification, error) {
	query := `
		SELECT user_id, kyc_status, verification_level,
		       monthly_limit_usd, single_transaction_limit_usd
		FROM user_verifications
		ORDER BY user_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	defer rows.Close()

	var result []*domain.UserVerification
	for rows.Next() {
		var v domain.UserVerification
		if err := rows.Scan(
			&v.UserID, &v.KYCStatus, &v.VerificationLevel,
			&v.MonthlyLimitUSD, &v.SingleTransactionLimitUSD,
		); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}
	return result, nil
}
