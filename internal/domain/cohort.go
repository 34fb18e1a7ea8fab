package domain

import "time"

// UserActivationRecord captures a user's first completed transaction,
// derived per user during the acquisition pipeline. Not persisted.
type UserActivationRecord struct {
	UserID             int64
	RegistrationDate   time.Time
	CountryCode        string
	AcquisitionChannel string
	VerificationLevel  int

	// FirstCompletedAt is the earliest completed-transaction timestamp,
	// nil when the user has no completed transactions.
	FirstCompletedAt *time.Time

	// Activated is true iff FirstCompletedAt is within 30 days of
	// registration, boundary inclusive.
	Activated bool

	// DaysToActivation is meaningful only when Activated.
	DaysToActivation int
}

// ActivationWindowDays is the activation window after registration (inclusive).
const ActivationWindowDays = 30

// CohortMetric is one row of the user acquisition report, keyed by
// (acquisition_month, country_code, acquisition_channel, verification_level).
// Corresponds to the cohort_metrics table in ClickHouse.
type CohortMetric struct {
	AcquisitionMonth   time.Time // first instant of the calendar month, UTC
	CountryCode        string
	AcquisitionChannel string
	VerificationLevel  int

	CohortSize     int
	ActivatedUsers int

	// ActivationRate is percent, rounded to 2 decimals; nil for empty cohorts.
	ActivationRate *float64

	// AvgDaysToActivation averages over activated users only; nil when none.
	AvgDaysToActivation *float64

	FunnelHealth string
}

// Funnel health labels
const (
	FunnelNeedsImprovement = "Needs Improvement"
	FunnelModerate         = "Moderate"
	FunnelStrong           = "Strong"
)
