package storage

import (
	"context"
	"time"

	"remit-analytics/internal/domain"
)

// UserStore provides access to users storage.
type UserStore interface {
	// Insert adds a new user. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, u *domain.User) error

	// InsertBulk adds multiple users atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, users []*domain.User) error

	// GetByID retrieves a user by id. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetAll retrieves all users ordered by id ASC.
	GetAll(ctx context.Context) ([]*domain.User, error)
}

// VerificationStore provides access to user_verifications storage.
type VerificationStore interface {
	// Insert adds a verification record. Returns ErrDuplicateKey if user_id exists.
	Insert(ctx context.Context, v *domain.UserVerification) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.UserVerification) error

	// GetByUserID retrieves the verification record for a user.
	// Returns ErrNotFound if not exists.
	GetByUserID(ctx context.Context, userID int64) (*domain.UserVerification, error)

	// GetAll retrieves all verification records ordered by user_id ASC.
	GetAll(ctx context.Context) ([]*domain.UserVerification, error)
}

// TransactionStore provides access to transactions storage.
type TransactionStore interface {
	// Insert adds a new transaction. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, t *domain.Transaction) error

	// InsertBulk adds multiple transactions atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, txs []*domain.Transaction) error

	// GetByID retrieves a transaction by id. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// GetByUserID retrieves all transactions for a user, ordered by initiated_at ASC, id ASC.
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Transaction, error)

	// GetAll retrieves all transactions ordered by initiated_at ASC, id ASC.
	GetAll(ctx context.Context) ([]*domain.Transaction, error)
}

// PaymentMethodStore provides access to payment_methods storage.
type PaymentMethodStore interface {
	// Insert adds a payment method. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, m *domain.PaymentMethod) error

	// InsertBulk adds multiple methods atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, methods []*domain.PaymentMethod) error

	// GetByID retrieves a payment method by id. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error)

	// GetAll retrieves all payment methods ordered by id ASC.
	GetAll(ctx context.Context) ([]*domain.PaymentMethod, error)
}

// ExchangeRateStore provides access to exchange_rates storage.
type ExchangeRateStore interface {
	// Insert adds a rate. Returns ErrDuplicateKey if (currency_pair, date) exists.
	Insert(ctx context.Context, r *domain.ExchangeRate) error

	// InsertBulk adds multiple rates atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, rates []*domain.ExchangeRate) error

	// GetByPairDate retrieves the rate for an exact (currency_pair, date) match.
	// Returns ErrNotFound if not exists.
	GetByPairDate(ctx context.Context, currencyPair string, date time.Time) (*domain.ExchangeRate, error)

	// GetAll retrieves all rates ordered by currency_pair ASC, date ASC.
	GetAll(ctx context.Context) ([]*domain.ExchangeRate, error)
}

// TransactionFeeStore provides access to transaction_fees storage.
type TransactionFeeStore interface {
	// Insert adds a fee structure. Returns ErrDuplicateKey if (currency_pair, fee_type) exists.
	Insert(ctx context.Context, f *domain.TransactionFee) error

	// InsertBulk adds multiple fee structures atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, fees []*domain.TransactionFee) error

	// GetActiveByPair retrieves the active fee structure for a corridor.
	// Returns ErrNotFound if none is active.
	GetActiveByPair(ctx context.Context, currencyPair string) (*domain.TransactionFee, error)

	// GetAll retrieves all fee structures ordered by currency_pair ASC, fee_type ASC.
	GetAll(ctx context.Context) ([]*domain.TransactionFee, error)
}

// MarketMetricStore provides access to market_month_metrics storage.
type MarketMetricStore interface {
	// InsertBulk adds metric rows. Fails entire batch on duplicate (country_code, report_month).
	InsertBulk(ctx context.Context, metrics []*domain.MarketMonthMetric) error

	// GetAll retrieves all rows ordered by country_code ASC, report_month ASC,
	// investment_priority DESC.
	GetAll(ctx context.Context) ([]*domain.MarketMonthMetric, error)
}

// CorridorMetricStore provides access to corridor_month_metrics storage.
type CorridorMetricStore interface {
	// InsertBulk adds metric rows. Fails entire batch on duplicate (currency_pair, month).
	InsertBulk(ctx context.Context, metrics []*domain.CorridorMonthMetric) error

	// GetAll retrieves all rows ordered by month ASC, total_fees_usd DESC.
	GetAll(ctx context.Context) ([]*domain.CorridorMonthMetric, error)
}

// CohortMetricStore provides access to cohort_metrics storage.
type CohortMetricStore interface {
	// InsertBulk adds metric rows. Fails entire batch on duplicate cohort key.
	InsertBulk(ctx context.Context, metrics []*domain.CohortMetric) error

	// GetAll retrieves all rows ordered by acquisition_month ASC, activation_rate DESC
	// (nil rates last), with cohort key tiebreaks.
	GetAll(ctx context.Context) ([]*domain.CohortMetric, error)
}
