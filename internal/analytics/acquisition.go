package analytics

import (
	"sort"
	"time"

	"remit-analytics/internal/domain"
)

// BuildActivationRecords derives one activation record per eligible user.
// Eligible means: not a test fixture and holding an approved verification
// record. The earliest completed transaction decides activation; the
// window is inclusive at exactly registration + 30 days.
func BuildActivationRecords(
	users []*domain.User,
	verifications []*domain.UserVerification,
	transactions []*domain.Transaction,
) ([]*domain.UserActivationRecord, int) {
	verByUser := make(map[int64]*domain.UserVerification, len(verifications))
	for _, v := range verifications {
		verByUser[v.UserID] = v
	}

	firstCompleted := make(map[int64]time.Time)
	for _, tx := range transactions {
		if tx.Status != domain.StatusCompleted {
			continue
		}
		t := tx.InitiatedAt.UTC()
		if cur, ok := firstCompleted[tx.UserID]; !ok || t.Before(cur) {
			firstCompleted[tx.UserID] = t
		}
	}

	var records []*domain.UserActivationRecord
	unverified := 0
	for _, u := range users {
		if u.IsTestUser() {
			continue
		}
		v, ok := verByUser[u.ID]
		if !ok || v.KYCStatus != domain.KYCApproved {
			unverified++
			continue
		}

		rec := &domain.UserActivationRecord{
			UserID:             u.ID,
			RegistrationDate:   u.RegistrationDate.UTC(),
			CountryCode:        u.CountryCode,
			AcquisitionChannel: u.AcquisitionChannel,
			VerificationLevel:  v.VerificationLevel,
		}

		if first, ok := firstCompleted[u.ID]; ok {
			f := first
			rec.FirstCompletedAt = &f

			deadline := rec.RegistrationDate.AddDate(0, 0, domain.ActivationWindowDays)
			if !first.After(deadline) {
				rec.Activated = true
				rec.DaysToActivation = int(first.Sub(rec.RegistrationDate).Hours() / 24)
			}
		}

		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UserID < records[j].UserID
	})

	return records, unverified
}

type cohortKey struct {
	month   time.Time
	country string
	channel string
	level   int
}

// ComputeCohortMetrics aggregates activation records into cohort rows keyed
// by (acquisition_month, country, channel, verification_level).
// AvgDaysToActivation averages over activated users only.
func ComputeCohortMetrics(records []*domain.UserActivationRecord) []*domain.CohortMetric {
	type cohortAccum struct {
		size      int
		activated int
		daysSum   int
	}

	groups := make(map[cohortKey]*cohortAccum)
	for _, rec := range records {
		key := cohortKey{
			month:   TruncateMonth(rec.RegistrationDate),
			country: rec.CountryCode,
			channel: rec.AcquisitionChannel,
			level:   rec.VerificationLevel,
		}
		acc, ok := groups[key]
		if !ok {
			acc = &cohortAccum{}
			groups[key] = acc
		}
		acc.size++
		if rec.Activated {
			acc.activated++
			acc.daysSum += rec.DaysToActivation
		}
	}

	metrics := make([]*domain.CohortMetric, 0, len(groups))
	for key, acc := range groups {
		m := &domain.CohortMetric{
			AcquisitionMonth:   key.month,
			CountryCode:        key.country,
			AcquisitionChannel: key.channel,
			VerificationLevel:  key.level,
			CohortSize:         acc.size,
			ActivatedUsers:     acc.activated,
		}

		m.ActivationRate = SafePercent(float64(acc.activated), float64(acc.size))
		if avg := SafeDivide(float64(acc.daysSum), float64(acc.activated)); avg != nil {
			v := Round2(*avg)
			m.AvgDaysToActivation = &v
		}
		if m.ActivationRate != nil {
			m.FunnelHealth = FunnelHealth(*m.ActivationRate)
		}

		metrics = append(metrics, m)
	}

	// Output order: acquisition month ASC, activation rate DESC (nil last),
	// then cohort key for a fully deterministic table.
	sort.Slice(metrics, func(i, j int) bool {
		a, b := metrics[i], metrics[j]
		if !a.AcquisitionMonth.Equal(b.AcquisitionMonth) {
			return a.AcquisitionMonth.Before(b.AcquisitionMonth)
		}
		ar, br := a.ActivationRate, b.ActivationRate
		switch {
		case ar != nil && br != nil && *ar != *br:
			return *ar > *br
		case ar != nil && br == nil:
			return true
		case ar == nil && br != nil:
			return false
		}
		if a.CountryCode != b.CountryCode {
			return a.CountryCode < b.CountryCode
		}
		if a.AcquisitionChannel != b.AcquisitionChannel {
			return a.AcquisitionChannel < b.AcquisitionChannel
		}
		return a.VerificationLevel < b.VerificationLevel
	})

	return metrics
}
