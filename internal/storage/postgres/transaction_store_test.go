package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

func TestTransactionStore(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	// Satisfy the user and payment method foreign keys first.
	reg := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, NewUserStore(pool).InsertBulk(ctx, []*domain.User{
		{ID: 11, RegistrationDate: reg, CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 12, RegistrationDate: reg, CountryCode: "GB", AcquisitionChannel: "referral"},
	}))
	require.NoError(t, NewPaymentMethodStore(pool).Insert(ctx, &domain.PaymentMethod{
		ID: 1, MethodName: "bank_transfer", CountryCode: "US", IsActive: true,
	}))

	jan10 := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)

	t.Run("insert and get by id", func(t *testing.T) {
		tx := &domain.Transaction{
			ID: 101, UserID: 11, InitiatedAt: jan10, Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "MXN",
			SourceAmount: 10000, FeeAmount: 300, RevenueUSD: 2.5,
			PaymentMethodID: ptr(int64(1)),
		}
		require.NoError(t, store.Insert(ctx, tx))

		got, err := store.GetByID(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.UserID)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		assert.Equal(t, int64(10000), got.SourceAmount)
		require.NotNil(t, got.PaymentMethodID)
		assert.Equal(t, int64(1), *got.PaymentMethodID)
		assert.True(t, got.InitiatedAt.Equal(jan10))
	})

	t.Run("nullable payment method round-trips as nil", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, &domain.Transaction{
			ID: 102, UserID: 12, InitiatedAt: jan10.Add(time.Hour), Status: domain.StatusPending,
			SourceCurrency: "GBP", DestinationCurrency: "INR",
			SourceAmount: 50000, FeeAmount: 4000,
		}))

		got, err := store.GetByID(ctx, 102)
		require.NoError(t, err)
		assert.Nil(t, got.PaymentMethodID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := store.Insert(ctx, &domain.Transaction{
			ID: 101, UserID: 11, InitiatedAt: jan10, Status: domain.StatusFailed,
			SourceCurrency: "USD", DestinationCurrency: "MXN",
		})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("get by user id ordered by time", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, &domain.Transaction{
			ID: 103, UserID: 11, InitiatedAt: jan10.Add(-time.Hour), Status: domain.StatusFailed,
			SourceCurrency: "USD", DestinationCurrency: "PHP",
		}))

		txs, err := store.GetByUserID(ctx, 11)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, int64(103), txs[0].ID)
		assert.Equal(t, int64(101), txs[1].ID)
	})

	t.Run("get all", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
