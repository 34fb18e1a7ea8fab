package domain

// UserVerification represents a KYC verification record.
// Corresponds to the user_verifications table in PostgreSQL.
// At most one active record per user is assumed.
type UserVerification struct {
	UserID                   int64
	KYCStatus                string // approved | pending | rejected
	VerificationLevel        int    // 1..3, correlated with transaction limits
	MonthlyLimitUSD          float64
	SingleTransactionLimitUSD float64
}

// KYC status values
const (
	KYCApproved = "approved"
	KYCPending  = "pending"
	KYCRejected = "rejected"
)

// Verification levels
const (
	VerificationLevelBasic    = 1
	VerificationLevelStandard = 2
	VerificationLevelFull     = 3
)
