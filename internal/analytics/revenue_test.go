package analytics

import (
	"math"
	"testing"

	"remit-analytics/internal/domain"
)

func TestComputeRevenueMetrics(t *testing.T) {
	users := []*domain.User{
		{ID: 3, CountryCode: "US"}, // test fixture, excluded
		{ID: 11, CountryCode: "US"},
		{ID: 12, CountryCode: "US"},
		{ID: 14, CountryCode: "CA"}, // no transactions, lands in Dormant
	}
	rates := []*domain.ExchangeRate{
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, 1, 10), Rate: 17},
		{CurrencyPair: "GBP/INR", DateRecorded: day(2024, 1, 10), Rate: 105},
	}
	fees := []*domain.TransactionFee{
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypePercentage, FeeValue: 0.029, IsActive: true},
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat, FeeValue: 4.99, IsActive: false},
	}
	transactions := []*domain.Transaction{
		{ID: 101, UserID: 11, InitiatedAt: day(2024, 1, 10), Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "MXN",
			SourceAmount: 10000, FeeAmount: 300, RevenueUSD: 2},
		{ID: 102, UserID: 12, InitiatedAt: day(2024, 1, 10), Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "MXN",
			SourceAmount: 20000, FeeAmount: 500, RevenueUSD: 3},
		{ID: 103, UserID: 11, InitiatedAt: day(2024, 1, 10), Status: domain.StatusCompleted,
			SourceCurrency: "GBP", DestinationCurrency: "INR",
			SourceAmount: 50000, FeeAmount: 4000, RevenueUSD: 8},
		// Completed but no same-day rate row: dropped and counted.
		{ID: 104, UserID: 11, InitiatedAt: day(2024, 1, 15), Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "PHP",
			SourceAmount: 10000, FeeAmount: 100, RevenueUSD: 1},
		// Pending is filtered before the rate join, not counted as dropped.
		{ID: 105, UserID: 11, InitiatedAt: day(2024, 1, 20), Status: domain.StatusPending,
			SourceCurrency: "USD", DestinationCurrency: "PHP", SourceAmount: 10000},
		// Test user, excluded.
		{ID: 106, UserID: 3, InitiatedAt: day(2024, 1, 10), Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 99900},
	}

	result := ComputeRevenueMetrics(users, transactions, rates, fees)

	if result.DroppedNoRate != 1 {
		t.Errorf("DroppedNoRate = %d, want 1", result.DroppedNoRate)
	}
	if len(result.Corridors) != 2 {
		t.Fatalf("got %d corridor rows, want 2", len(result.Corridors))
	}

	// Same month, so total fees DESC decides the order.
	gbpInr, usdMxn := result.Corridors[0], result.Corridors[1]
	if gbpInr.CurrencyPair != "GBP/INR" || usdMxn.CurrencyPair != "USD/MXN" {
		t.Fatalf("corridor order = %s, %s; want GBP/INR, USD/MXN",
			gbpInr.CurrencyPair, usdMxn.CurrencyPair)
	}

	if usdMxn.TransactionCount != 2 || usdMxn.UniqueUsers != 2 {
		t.Errorf("USD/MXN count = %d/%d users, want 2/2", usdMxn.TransactionCount, usdMxn.UniqueUsers)
	}
	if usdMxn.TotalVolumeUSD != 300 {
		t.Errorf("USD/MXN volume = %v, want 300", usdMxn.TotalVolumeUSD)
	}
	if usdMxn.TotalConvertedUSD != 5100 {
		t.Errorf("USD/MXN converted = %v, want 5100", usdMxn.TotalConvertedUSD)
	}
	if usdMxn.TotalFeesUSD != 8 || usdMxn.TotalRevenueUSD != 5 {
		t.Errorf("USD/MXN fees/revenue = %v/%v, want 8/5", usdMxn.TotalFeesUSD, usdMxn.TotalRevenueUSD)
	}
	if usdMxn.AvgTransactionUSD == nil || *usdMxn.AvgTransactionUSD != 150 {
		t.Errorf("USD/MXN avg = %v, want 150", usdMxn.AvgTransactionUSD)
	}
	if usdMxn.EffectiveFeeRate == nil || math.Abs(*usdMxn.EffectiveFeeRate-8.0/300.0) > 1e-12 {
		t.Errorf("USD/MXN effective fee rate = %v, want %v", usdMxn.EffectiveFeeRate, 8.0/300.0)
	}
	if usdMxn.PricingRecommendation != domain.PricingOptimal {
		t.Errorf("USD/MXN recommendation = %q, want %q",
			usdMxn.PricingRecommendation, domain.PricingOptimal)
	}
	// Only the active fee row is joined.
	if usdMxn.ConfiguredFeeType == nil || *usdMxn.ConfiguredFeeType != domain.FeeTypePercentage {
		t.Errorf("USD/MXN configured fee type = %v, want percentage", usdMxn.ConfiguredFeeType)
	}
	if usdMxn.ConfiguredFeeValue == nil || *usdMxn.ConfiguredFeeValue != 0.029 {
		t.Errorf("USD/MXN configured fee value = %v, want 0.029", usdMxn.ConfiguredFeeValue)
	}

	// 40/500 = 0.08 effective rate, above the volume-discount threshold.
	if gbpInr.PricingRecommendation != domain.PricingVolumeDiscount {
		t.Errorf("GBP/INR recommendation = %q, want %q",
			gbpInr.PricingRecommendation, domain.PricingVolumeDiscount)
	}
	if gbpInr.ConfiguredFeeType != nil {
		t.Errorf("GBP/INR configured fee type = %v, want nil", *gbpInr.ConfiguredFeeType)
	}

	// Both transacting users made fewer than five rate-matched transfers.
	if len(result.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(result.Segments))
	}
	occ, dormant := result.Segments[0], result.Segments[1]
	if occ.Segment != domain.SegmentOccasional || occ.UserCount != 2 || occ.TotalValueUSD != 800 {
		t.Errorf("segment 0 = %+v, want Occasional with 2 users, 800", occ)
	}
	if dormant.Segment != domain.SegmentDormant || dormant.UserCount != 1 || dormant.TotalValueUSD != 0 {
		t.Errorf("segment 1 = %+v, want Dormant with 1 user, 0", dormant)
	}
}

func TestComputeRevenueMetricsHighValueSegment(t *testing.T) {
	users := []*domain.User{{ID: 11, CountryCode: "US"}}
	rates := []*domain.ExchangeRate{
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, 1, 10), Rate: 17},
	}
	// A single $10,000 transfer crosses the value threshold on its own.
	transactions := []*domain.Transaction{
		{ID: 101, UserID: 11, InitiatedAt: day(2024, 1, 10), Status: domain.StatusCompleted,
			SourceCurrency: "USD", DestinationCurrency: "MXN",
			SourceAmount: 1000000, FeeAmount: 10000, RevenueUSD: 50},
	}

	result := ComputeRevenueMetrics(users, transactions, rates, nil)

	if len(result.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(result.Segments))
	}
	if s := result.Segments[0]; s.Segment != domain.SegmentHighValue || s.UserCount != 1 {
		t.Errorf("segment = %+v, want High-Value with 1 user", s)
	}
}
