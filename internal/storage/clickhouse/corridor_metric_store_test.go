package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

func TestCorridorMetricStore(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewCorridorMetricStore(conn)

	require.NoError(t, store.InsertBulk(ctx, []*domain.CorridorMonthMetric{
		{
			CurrencyPair:          "USD/MXN",
			Month:                 month(2024, 1),
			TransactionCount:      2,
			UniqueUsers:           2,
			TotalVolumeUSD:        300,
			TotalConvertedUSD:     5100,
			TotalFeesUSD:          8,
			TotalRevenueUSD:       5,
			AvgTransactionUSD:     ptr(150.0),
			EffectiveFeeRate:      ptr(0.0267),
			ConfiguredFeeType:     ptr(domain.FeeTypePercentage),
			ConfiguredFeeValue:    ptr(0.029),
			PricingRecommendation: domain.PricingOptimal,
		},
		{
			CurrencyPair:          "GBP/INR",
			Month:                 month(2024, 1),
			TransactionCount:      1,
			UniqueUsers:           1,
			TotalVolumeUSD:        500,
			TotalFeesUSD:          40,
			AvgTransactionUSD:     ptr(500.0),
			EffectiveFeeRate:      ptr(0.08),
			PricingRecommendation: domain.PricingVolumeDiscount,
		},
	}))

	t.Run("get all ordered by month then fees desc", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)

		assert.Equal(t, "GBP/INR", all[0].CurrencyPair)
		assert.Equal(t, "USD/MXN", all[1].CurrencyPair)

		got := all[1]
		assert.Equal(t, 2, got.TransactionCount)
		assert.Equal(t, 5100.0, got.TotalConvertedUSD)
		require.NotNil(t, got.ConfiguredFeeType)
		assert.Equal(t, domain.FeeTypePercentage, *got.ConfiguredFeeType)
		require.NotNil(t, got.ConfiguredFeeValue)
		assert.Equal(t, 0.029, *got.ConfiguredFeeValue)
		assert.True(t, got.Month.Equal(month(2024, 1)))

		// Corridor without a configured fee keeps nil fee columns.
		assert.Nil(t, all[0].ConfiguredFeeType)
		assert.Nil(t, all[0].ConfiguredFeeValue)
	})

	t.Run("duplicate corridor month", func(t *testing.T) {
		err := store.InsertBulk(ctx, []*domain.CorridorMonthMetric{
			{CurrencyPair: "USD/MXN", Month: month(2024, 1)},
		})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})
}
