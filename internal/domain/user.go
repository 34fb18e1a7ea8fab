package domain

import "time"

// User represents a registered customer.
// Corresponds to the users table in PostgreSQL.
type User struct {
	ID                 int64     // PRIMARY KEY
	RegistrationDate   time.Time // UTC
	CountryCode        string    // ISO 3166-1 alpha-2
	AcquisitionChannel string    // e.g. "organic", "paid_social", "referral"
}

// TestUserMaxID is the highest user ID reserved for test fixtures.
// Users with ID <= TestUserMaxID are excluded from every metric.
const TestUserMaxID = 10

// IsTestUser reports whether the user is a reserved test fixture.
func (u *User) IsTestUser() bool {
	return u.ID <= TestUserMaxID
}
