package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

func TestTransactionFeeStoreGetActiveByPair(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionFeeStore()

	require.NoError(t, store.InsertBulk(ctx, []*domain.TransactionFee{
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypePercentage, FeeValue: 0.029, IsActive: true},
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat, FeeValue: 4.99, IsActive: false},
		{CurrencyPair: "USD/PHP", FeeType: domain.FeeTypeFlat, FeeValue: 3.99, IsActive: true},
	}))

	fee, err := store.GetActiveByPair(ctx, "USD/MXN")
	require.NoError(t, err)
	assert.Equal(t, domain.FeeTypePercentage, fee.FeeType)
	assert.Equal(t, 0.029, fee.FeeValue)

	// Inactive-only corridors report not found.
	require.NoError(t, store.Insert(ctx, &domain.TransactionFee{
		CurrencyPair: "GBP/INR", FeeType: domain.FeeTypeFlat, IsActive: false,
	}))
	_, err = store.GetActiveByPair(ctx, "GBP/INR")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetActiveByPair(ctx, "EUR/TRY")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTransactionFeeStoreGetActiveByPairDeterministic(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionFeeStore()

	// Two active rows for one pair: lexically lowest fee_type wins.
	require.NoError(t, store.InsertBulk(ctx, []*domain.TransactionFee{
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypePercentage, IsActive: true},
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat, IsActive: true},
	}))

	fee, err := store.GetActiveByPair(ctx, "USD/MXN")
	require.NoError(t, err)
	assert.Equal(t, domain.FeeTypeFlat, fee.FeeType)
}

func TestTransactionFeeStoreDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionFeeStore()

	require.NoError(t, store.Insert(ctx, &domain.TransactionFee{
		CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat,
	}))
	// Same pair with a different fee_type is a distinct key.
	require.NoError(t, store.Insert(ctx, &domain.TransactionFee{
		CurrencyPair: "USD/MXN", FeeType: domain.FeeTypePercentage,
	}))
	err := store.Insert(ctx, &domain.TransactionFee{
		CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat,
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestTransactionFeeStoreGetAllOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionFeeStore()

	require.NoError(t, store.InsertBulk(ctx, []*domain.TransactionFee{
		{CurrencyPair: "USD/PHP", FeeType: domain.FeeTypeFlat},
		{CurrencyPair: "GBP/INR", FeeType: domain.FeeTypePercentage},
		{CurrencyPair: "GBP/INR", FeeType: domain.FeeTypeFlat},
	}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "GBP/INR", all[0].CurrencyPair)
	assert.Equal(t, domain.FeeTypeFlat, all[0].FeeType)
	assert.Equal(t, domain.FeeTypePercentage, all[1].FeeType)
	assert.Equal(t, "USD/PHP", all[2].CurrencyPair)
}
