package pipeline

import (
	"context"
	"time"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// LoadFixtures populates the input stores with a small but representative
// snapshot: three months of transfers across three corridors, a couple of
// test accounts, users without approved verification, and one completed
// transaction with a deliberately missing exchange rate.
func LoadFixtures(
	ctx context.Context,
	users storage.UserStore,
	verifications storage.VerificationStore,
	transactions storage.TransactionStore,
	paymentMethods storage.PaymentMethodStore,
	rates storage.ExchangeRateStore,
	fees storage.TransactionFeeStore,
) error {
	if err := paymentMethods.InsertBulk(ctx, fixturePaymentMethods()); err != nil {
		return err
	}
	if err := users.InsertBulk(ctx, fixtureUsers()); err != nil {
		return err
	}
	if err := verifications.InsertBulk(ctx, fixtureVerifications()); err != nil {
		return err
	}
	if err := transactions.InsertBulk(ctx, fixtureTransactions()); err != nil {
		return err
	}
	if err := rates.InsertBulk(ctx, fixtureExchangeRates()); err != nil {
		return err
	}
	if err := fees.InsertBulk(ctx, fixtureTransactionFees()); err != nil {
		return err
	}
	return nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func at(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func fixturePaymentMethods() []*domain.PaymentMethod {
	return []*domain.PaymentMethod{
		{ID: 1, MethodName: "bank_transfer", CountryCode: "US", IsActive: true},
		{ID: 2, MethodName: "debit_card", CountryCode: "US", IsActive: true},
		{ID: 3, MethodName: "bank_transfer", CountryCode: "GB", IsActive: true},
		{ID: 4, MethodName: "mobile_wallet", CountryCode: "CA", IsActive: true},
	}
}

func fixtureUsers() []*domain.User {
	return []*domain.User{
		// Internal test accounts (id <= 10)
		{ID: 3, RegistrationDate: at(2024, time.January, 2, 9), CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 7, RegistrationDate: at(2024, time.January, 3, 9), CountryCode: "GB", AcquisitionChannel: "referral"},

		{ID: 11, RegistrationDate: at(2024, time.January, 5, 10), CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 12, RegistrationDate: at(2024, time.January, 10, 11), CountryCode: "US", AcquisitionChannel: "paid_search"},
		{ID: 13, RegistrationDate: at(2024, time.January, 15, 12), CountryCode: "US", AcquisitionChannel: "referral"},
		{ID: 14, RegistrationDate: at(2024, time.January, 20, 13), CountryCode: "GB", AcquisitionChannel: "organic"},
		{ID: 15, RegistrationDate: at(2024, time.January, 25, 14), CountryCode: "GB", AcquisitionChannel: "paid_search"},
		{ID: 16, RegistrationDate: at(2024, time.February, 3, 10), CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 17, RegistrationDate: at(2024, time.February, 8, 11), CountryCode: "US", AcquisitionChannel: "paid_search"},
		{ID: 18, RegistrationDate: at(2024, time.February, 14, 12), CountryCode: "GB", AcquisitionChannel: "organic"},
		{ID: 19, RegistrationDate: at(2024, time.February, 20, 13), CountryCode: "CA", AcquisitionChannel: "referral"},
		{ID: 20, RegistrationDate: at(2024, time.March, 1, 10), CountryCode: "US", AcquisitionChannel: "organic"},
		{ID: 21, RegistrationDate: at(2024, time.March, 5, 11), CountryCode: "GB", AcquisitionChannel: "paid_search"},
		{ID: 22, RegistrationDate: at(2024, time.March, 12, 12), CountryCode: "CA", AcquisitionChannel: "organic"},
	}
}

func fixtureVerifications() []*domain.UserVerification {
	return []*domain.UserVerification{
		{UserID: 3, KYCStatus: domain.KYCApproved, VerificationLevel: 2, MonthlyLimitUSD: 10000, SingleTransactionLimitUSD: 2500},
		{UserID: 11, KYCStatus: domain.KYCApproved, VerificationLevel: 3, MonthlyLimitUSD: 50000, SingleTransactionLimitUSD: 10000},
		{UserID: 12, KYCStatus: domain.KYCApproved, VerificationLevel: 2, MonthlyLimitUSD: 10000, SingleTransactionLimitUSD: 2500},
		{UserID: 13, KYCStatus: domain.KYCApproved, VerificationLevel: 1, MonthlyLimitUSD: 2000, SingleTransactionLimitUSD: 500},
		{UserID: 14, KYCStatus: domain.KYCApproved, VerificationLevel: 3, MonthlyLimitUSD: 50000, SingleTransactionLimitUSD: 10000},
		{UserID: 15, KYCStatus: domain.KYCPending, VerificationLevel: 1, MonthlyLimitUSD: 2000, SingleTransactionLimitUSD: 500},
		{UserID: 16, KYCStatus: domain.KYCApproved, VerificationLevel: 2, MonthlyLimitUSD: 10000, SingleTransactionLimitUSD: 2500},
		{UserID: 17, KYCStatus: domain.KYCApproved, VerificationLevel: 1, MonthlyLimitUSD: 2000, SingleTransactionLimitUSD: 500},
		{UserID: 18, KYCStatus: domain.KYCApproved, VerificationLevel: 2, MonthlyLimitUSD: 10000, SingleTransactionLimitUSD: 2500},
		{UserID: 19, KYCStatus: domain.KYCApproved, VerificationLevel: 3, MonthlyLimitUSD: 50000, SingleTransactionLimitUSD: 10000},
		{UserID: 20, KYCStatus: domain.KYCRejected, VerificationLevel: 1, MonthlyLimitUSD: 0, SingleTransactionLimitUSD: 0},
		{UserID: 21, KYCStatus: domain.KYCApproved, VerificationLevel: 1, MonthlyLimitUSD: 2000, SingleTransactionLimitUSD: 500},
		// user 22 has no verification record at all
	}
}

func pmID(id int64) *int64 { return &id }

func fixtureTransactions() []*domain.Transaction {
	return []*domain.Transaction{
		{ID: 101, UserID: 11, InitiatedAt: at(2024, time.January, 6, 14), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 50000, FeeAmount: 1500, RevenueUSD: 12.00, PaymentMethodID: pmID(1)},
		{ID: 102, UserID: 11, InitiatedAt: at(2024, time.January, 12, 9), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 75000, FeeAmount: 2250, RevenueUSD: 18.00, PaymentMethodID: pmID(1)},
		{ID: 103, UserID: 12, InitiatedAt: at(2024, time.January, 12, 16), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 30000, FeeAmount: 900, RevenueUSD: 7.20, PaymentMethodID: pmID(2)},
		{ID: 104, UserID: 13, InitiatedAt: at(2024, time.January, 18, 10), Status: domain.StatusFailed, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 20000, FeeAmount: 600, RevenueUSD: 0, PaymentMethodID: pmID(2)},
		{ID: 105, UserID: 14, InitiatedAt: at(2024, time.January, 22, 11), Status: domain.StatusCompleted, SourceCurrency: "GBP", DestinationCurrency: "INR", SourceAmount: 100000, FeeAmount: 2500, RevenueUSD: 20.00, PaymentMethodID: pmID(3)},
		{ID: 106, UserID: 15, InitiatedAt: at(2024, time.January, 28, 12), Status: domain.StatusPending, SourceCurrency: "GBP", DestinationCurrency: "INR", SourceAmount: 40000, FeeAmount: 1000, RevenueUSD: 0, PaymentMethodID: pmID(3)},
		{ID: 107, UserID: 16, InitiatedAt: at(2024, time.February, 5, 13), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 60000, FeeAmount: 1800, RevenueUSD: 14.40, PaymentMethodID: pmID(1)},
		{ID: 108, UserID: 17, InitiatedAt: at(2024, time.February, 10, 14), Status: domain.StatusCancelled, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 25000, FeeAmount: 750, RevenueUSD: 0, PaymentMethodID: nil},
		{ID: 109, UserID: 14, InitiatedAt: at(2024, time.February, 15, 15), Status: domain.StatusCompleted, SourceCurrency: "GBP", DestinationCurrency: "INR", SourceAmount: 120000, FeeAmount: 3000, RevenueUSD: 24.00, PaymentMethodID: pmID(3)},
		{ID: 110, UserID: 19, InitiatedAt: at(2024, time.February, 21, 16), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "PHP", SourceAmount: 45000, FeeAmount: 1350, RevenueUSD: 10.80, PaymentMethodID: pmID(4)},
		{ID: 111, UserID: 20, InitiatedAt: at(2024, time.March, 3, 10), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 55000, FeeAmount: 1650, RevenueUSD: 13.20, PaymentMethodID: pmID(1)},
		{ID: 112, UserID: 21, InitiatedAt: at(2024, time.March, 7, 11), Status: domain.StatusCompleted, SourceCurrency: "GBP", DestinationCurrency: "INR", SourceAmount: 80000, FeeAmount: 2000, RevenueUSD: 16.00, PaymentMethodID: pmID(3)},
		// No USD/MXN rate exists for 2024-03-14; this row is dropped from
		// revenue metrics and surfaced in the data quality notes.
		{ID: 113, UserID: 11, InitiatedAt: at(2024, time.March, 14, 12), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 65000, FeeAmount: 1950, RevenueUSD: 15.60, PaymentMethodID: pmID(2)},
		// Test account activity, excluded everywhere.
		{ID: 114, UserID: 3, InitiatedAt: at(2024, time.January, 8, 9), Status: domain.StatusCompleted, SourceCurrency: "USD", DestinationCurrency: "MXN", SourceAmount: 35000, FeeAmount: 1050, RevenueUSD: 8.40, PaymentMethodID: pmID(1)},
		{ID: 115, UserID: 22, InitiatedAt: at(2024, time.March, 20, 13), Status: domain.StatusFailed, SourceCurrency: "USD", DestinationCurrency: "PHP", SourceAmount: 15000, FeeAmount: 450, RevenueUSD: 0, PaymentMethodID: pmID(4)},
	}
}

func fixtureExchangeRates() []*domain.ExchangeRate {
	return []*domain.ExchangeRate{
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, time.January, 6), Rate: 17.10},
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, time.January, 8), Rate: 17.15},
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, time.January, 12), Rate: 17.20},
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, time.February, 5), Rate: 17.05},
		{CurrencyPair: "USD/MXN", DateRecorded: day(2024, time.March, 3), Rate: 16.90},
		{CurrencyPair: "GBP/INR", DateRecorded: day(2024, time.January, 22), Rate: 105.40},
		{CurrencyPair: "GBP/INR", DateRecorded: day(2024, time.February, 15), Rate: 106.00},
		{CurrencyPair: "GBP/INR", DateRecorded: day(2024, time.March, 7), Rate: 105.10},
		{CurrencyPair: "USD/PHP", DateRecorded: day(2024, time.February, 21), Rate: 56.20},
	}
}

func fixtureTransactionFees() []*domain.TransactionFee {
	return []*domain.TransactionFee{
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypePercentage, FeeValue: 3.0, MinimumFee: 2.99, MaximumFee: 49.99, IsActive: true},
		{CurrencyPair: "USD/MXN", FeeType: domain.FeeTypeFlat, FeeValue: 4.99, MinimumFee: 4.99, MaximumFee: 4.99, IsActive: false},
		{CurrencyPair: "USD/PHP", FeeType: domain.FeeTypeFlat, FeeValue: 3.99, MinimumFee: 3.99, MaximumFee: 3.99, IsActive: true},
		// GBP/INR has no configured fee structure
	}
}
