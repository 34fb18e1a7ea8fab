package domain

import "time"

// ExchangeRate represents a daily rate for a corridor.
// Corresponds to the exchange_rates table in PostgreSQL.
// Lookups require an exact (currency_pair, date) match.
type ExchangeRate struct {
	CurrencyPair string    // "SRC/DST"
	DateRecorded time.Time // calendar date, UTC midnight
	Rate         float64
}

// RateDateFormat is the canonical layout for exchange-rate lookup keys.
const RateDateFormat = "2006-01-02"

// LookupKey returns the exact-match key "SRC/DST|YYYY-MM-DD".
func (r *ExchangeRate) LookupKey() string {
	return r.CurrencyPair + "|" + r.DateRecorded.UTC().Format(RateDateFormat)
}

// RateLookupKey builds the lookup key for a corridor and timestamp.
func RateLookupKey(currencyPair string, at time.Time) string {
	return currencyPair + "|" + at.UTC().Format(RateDateFormat)
}
