package postgres

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// UserStore implements storage.UserStore using PostgreSQL.
type UserStore struct {
	pool *Pool
}

// NewUserStore creates a new UserStore.
func NewUserStore(pool *Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Compile-time interface check.
var _ storage.UserStore = (*UserStore)(nil)

const insertUserQuery = `
	INSERT INTO users (id, registration_date, country_code, acquisition_channel)
	VALUES ($1, $2, $3, $4)
`

// Insert adds a new user. Returns ErrDuplicateKey if the id exists.
func (s *UserStore) Insert(ctx context.Context, u *domain.User) error {
	_, err := s.pool.Exec(ctx, insertUserQuery,
		u.ID, u.RegistrationDate, u.CountryCode, u.AcquisitionChannel,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// InsertBulk adds multiple users atomically. Fails entire batch on any duplicate.
func (s *UserStore) InsertBulk(ctx context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range users {
		_, err := tx.Exec(ctx, insertUserQuery,
			u.ID, u.RegistrationDate, u.CountryCode, u.AcquisitionChannel,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert user in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id. Returns ErrNotFound if not exists.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, registration_date, country_code, acquisition_channel
		FROM users
		WHERE id = $1
	`

	var u domain.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.RegistrationDate, &u.CountryCode, &u.AcquisitionChannel,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetAll retrieves all users ordered by id ASC.
func (s *UserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, registration_date, country_code, acquisition_channel
		FROM users
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.RegistrationDate, &u.CountryCode, &u.AcquisitionChannel); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return result, nil
}
