package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// CorridorMetricStore is an in-memory implementation of storage.CorridorMetricStore.
type CorridorMetricStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CorridorMonthMetric // keyed by "pair|YYYY-MM"
}

// NewCorridorMetricStore creates a new in-memory corridor metric store.
func NewCorridorMetricStore() *CorridorMetricStore {
	return &CorridorMetricStore{
		data: make(map[string]*domain.CorridorMonthMetric),
	}
}

func corridorKey(m *domain.CorridorMonthMetric) string {
	return m.CurrencyPair + "|" + m.Month.UTC().Format("2006-01")
}

// InsertBulk adds metric rows. Fails entire batch on duplicate (currency_pair, month).
func (s *CorridorMetricStore) InsertBulk(_ context.Context, metrics []*domain.CorridorMonthMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		if m == nil || m.CurrencyPair == "" {
			return storage.ErrInvalidInput
		}
		key := corridorKey(m)
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
		s.data[corridorKey(m)] = &copy
	}
	return nil
}

// GetAll retrieves all rows ordered by month ASC, total_fees_usd DESC,
// currency_pair ASC as tiebreak.
func (s *CorridorMetricStore) GetAll(_ context.Context) ([]*domain.CorridorMonthMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CorridorMonthMetric, 0, len(s.data))
	for _, m := range s.data {
		copy := *m
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Month.Equal(b.Month) {
			return a.Month.Before(b.Month)
		}
		if a.TotalFeesUSD != b.TotalFeesUSD {
			return a.TotalFeesUSD > b.TotalFeesUSD
		}
		return a.CurrencyPair < b.CurrencyPair
	})

	return result, nil
}

var _ storage.CorridorMetricStore = (*CorridorMetricStore)(nil)
