package domain

import "time"

// Transaction represents a money transfer.
// Corresponds to the transactions table in PostgreSQL.
// Monetary integer fields are minor units (cents); divide by 100 for USD.
type Transaction struct {
	ID                  int64     // PRIMARY KEY
	UserID              int64
	InitiatedAt         time.Time // UTC
	Status              string    // completed | pending | failed | cancelled
	SourceCurrency      string    // ISO 4217
	DestinationCurrency string    // ISO 4217
	SourceAmount        int64     // minor units
	FeeAmount           int64     // minor units
	RevenueUSD          float64
	PaymentMethodID     *int64    // nullable
}

// Transaction status values. Only StatusCompleted is final-successful;
// everything else contributes zero to monetary aggregates.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// CurrencyPair returns the corridor key "SRC/DST" for the transaction.
func (t *Transaction) CurrencyPair() string {
	return t.SourceCurrency + "/" + t.DestinationCurrency
}
