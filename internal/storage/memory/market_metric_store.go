package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// MarketMetricStore is an in-memory implementation of storage.MarketMetricStore.
type MarketMetricStore struct {
	mu   sync.RWMutex
	data map[string]*domain.MarketMonthMetric // keyed by "country|YYYY-MM"
}

// NewMarketMetricStore creates a new in-memory market metric store.
func NewMarketMetricStore() *MarketMetricStore {
	return &MarketMetricStore{
		data: make(map[string]*domain.MarketMonthMetric),
	}
}

func marketKey(m *domain.MarketMonthMetric) string {
	return m.CountryCode + "|" + m.ReportMonth.UTC().Format("2006-01")
}

// InsertBulk adds metric rows. Fails entire batch on duplicate (country_code, report_month).
func (s *MarketMetricStore) InsertBulk(_ context.Context, metrics []*domain.MarketMonthMetric) error {
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
		key := marketKey(m)
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
		s.data[marketKey(m)] = &copy
	}
	return nil
}

// GetAll retrieves all rows ordered by country_code ASC, report_month ASC,
// investment_priority DESC.
func (s *MarketMetricStore) GetAll(_ context.Context) ([]*domain.MarketMonthMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.MarketMonthMetric, 0, len(s.data))
	for _, m := range s.data {
		copy := *m
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.CountryCode != b.CountryCode {
			return a.CountryCode < b.CountryCode
		}
		if !a.ReportMonth.Equal(b.ReportMonth) {
			return a.ReportMonth.Before(b.ReportMonth)
		}
		return a.InvestmentPriority > b.InvestmentPriority
	})

	return result, nil
}

var _ storage.MarketMetricStore = (*MarketMetricStore)(nil)
