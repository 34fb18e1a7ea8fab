package domain

// PaymentMethod represents a funding instrument available in a country.
// Corresponds to the payment_methods table in PostgreSQL.
type PaymentMethod struct {
	ID          int64
	MethodName  string // e.g. "bank_transfer", "debit_card"
	CountryCode string
	IsActive    bool
}
