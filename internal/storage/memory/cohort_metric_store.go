package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// CohortMetricStore is an in-memory implementation of storage.CohortMetricStore.
type CohortMetricStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CohortMetric
}

// NewCohortMetricStore creates a new in-memory cohort metric store.
func NewCohortMetricStore() *CohortMetricStore {
	return &CohortMetricStore{
		data: make(map[string]*domain.CohortMetric),
	}
}

func cohortStoreKey(m *domain.CohortMetric) string {
	return fmt.Sprintf("%s|%s|%s|%d",
		m.AcquisitionMonth.UTC().Format("2006-01"),
		m.CountryCode,
		m.AcquisitionChannel,
		m.VerificationLevel,
	)
}

// InsertBulk adds metric rows. Fails entire batch on duplicate cohort key.
func (s *CohortMetricStore) InsertBulk(_ context.Context, metrics []*domain.CohortMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		if m == nil || m.CountryCode == "" {
			return storage.ErrInvalidInput
		}
		key := cohortStoreKey(m)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, m := range metrics {
		copy := *m
		s.data[cohortStoreKey(m)] = &copy
	}
	return nil
}

// GetAll retrieves all rows ordered by acquisition_month ASC, activation_rate
// DESC (nil rates last), with cohort key tiebreaks.
func (s *CohortMetricStore) GetAll(_ context.Context) ([]*domain.CohortMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CohortMetric, 0, len(s.data))
	for _, m := range s.data {
		copy := *m
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
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

	return result, nil
}

var _ storage.CohortMetricStore = (*CohortMetricStore)(nil)
