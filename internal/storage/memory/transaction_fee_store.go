package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// TransactionFeeStore is an in-memory implementation of storage.TransactionFeeStore.
type TransactionFeeStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TransactionFee // keyed by "pair|fee_type"
}

// NewTransactionFeeStore creates a new in-memory transaction fee store.
func NewTransactionFeeStore() *TransactionFeeStore {
	return &TransactionFeeStore{
		data: make(map[string]*domain.TransactionFee),
	}
}

func feeKey(f *domain.TransactionFee) string {
	return f.CurrencyPair + "|" + f.FeeType
}

// Insert adds a fee structure. Returns ErrDuplicateKey if (currency_pair, fee_type) exists.
func (s *TransactionFeeStore) Insert(_ context.Context, f *domain.TransactionFee) error {
	if f == nil || f.CurrencyPair == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := feeKey(f)
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *f
	s.data[key] = &copy
	return nil
}

// InsertBulk adds multiple fee structures atomically. Fails entire batch on any duplicate.
func (s *TransactionFeeStore) InsertBulk(_ context.Context, fees []*domain.TransactionFee) error {
	if len(fees) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(fees))
	for _, f := range fees {
		if f == nil || f.CurrencyPair == "" {
			return storage.ErrInvalidInput
		}
		key := feeKey(f)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, f := range fees {
		copy := *f
		s.data[feeKey(f)] = &copy
	}
	return nil
}

// GetActiveByPair retrieves the active fee structure for a corridor.
func (s *TransactionFeeStore) GetActiveByPair(_ context.Context, currencyPair string) (*domain.TransactionFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Deterministic pick: lowest fee_type lexically wins if several are active.
	var keys []string
	for key, f := range s.data {
		if f.CurrencyPair == currencyPair && f.IsActive {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, storage.ErrNotFound
	}
	sort.Strings(keys)

	copy := *s.data[keys[0]]
	return &copy, nil
}

// GetAll retrieves all fee structures ordered by currency_pair ASC, fee_type ASC.
func (s *TransactionFeeStore) GetAll(_ context.Context) ([]*domain.TransactionFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TransactionFee, 0, len(s.data))
	for _, f := range s.data {
		copy := *f
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CurrencyPair != result[j].CurrencyPair {
			return result[i].CurrencyPair < result[j].CurrencyPair
		}
		return result[i].FeeType < result[j].FeeType
	})

	return result, nil
}

var _ storage.TransactionFeeStore = (*TransactionFeeStore)(nil)
