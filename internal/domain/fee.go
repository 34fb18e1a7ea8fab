package domain

// TransactionFee represents the configured fee structure for a corridor.
// Corresponds to the transaction_fees table in PostgreSQL.
type TransactionFee struct {
	CurrencyPair string
	FeeType      string // percentage | flat
	FeeValue     float64
	MinimumFee   float64
	MaximumFee   float64
	IsActive     bool
}

// Fee type values
const (
	FeeTypePercentage = "percentage"
	FeeTypeFlat       = "flat"
)
