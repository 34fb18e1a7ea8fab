package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// ExchangeRateStore is an in-memory implementation of storage.ExchangeRateStore.
type ExchangeRateStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ExchangeRate // keyed by "pair|YYYY-MM-DD"
}

// NewExchangeRateStore creates a new in-memory exchange rate store.
func NewExchangeRateStore() *ExchangeRateStore {
	return &ExchangeRateStore{
		data: make(map[string]*domain.ExchangeRate),
	}
}

// Insert adds a rate. Returns ErrDuplicateKey if (currency_pair, date) exists.
func (s *ExchangeRateStore) Insert(_ context.Context, r *domain.ExchangeRate) error {
	if r == nil || r.CurrencyPair == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.LookupKey()
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[key] = &copy
	return nil
}

// InsertBulk adds multiple rates atomically. Fails entire batch on any duplicate.
func (s *ExchangeRateStore) InsertBulk(_ context.Context, rates []*domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(rates))
	for _, r := range rates {
		if r == nil || r.CurrencyPair == "" {
			return storage.ErrInvalidInput
		}
		key := r.LookupKey()
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range rates {
		copy := *r
		s.data[r.LookupKey()] = &copy
	}
	return nil
}

// GetByPairDate retrieves the rate for an exact (currency_pair, date) match.
func (s *ExchangeRateStore) GetByPairDate(_ context.Context, currencyPair string, date time.Time) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[domain.RateLookupKey(currencyPair, date)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *r
	return &copy, nil
}

// GetAll retrieves all rates ordered by currency_pair ASC, date ASC.
func (s *ExchangeRateStore) GetAll(_ context.Context) ([]*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ExchangeRate, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CurrencyPair != result[j].CurrencyPair {
			return result[i].CurrencyPair < result[j].CurrencyPair
		}
		return result[i].DateRecorded.Before(result[j].DateRecorded)
	})

	return result, nil
}

var _ storage.ExchangeRateStore = (*ExchangeRateStore)(nil)
