package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// PaymentMethodStore is an in-memory implementation of storage.PaymentMethodStore.
type PaymentMethodStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.PaymentMethod
}

// NewPaymentMethodStore creates a new in-memory payment method store.
func NewPaymentMethodStore() *PaymentMethodStore {
	return &PaymentMethodStore{
		data: make(map[int64]*domain.PaymentMethod),
	}
}

// Insert adds a payment method. Returns ErrDuplicateKey if the id exists.
func (s *PaymentMethodStore) Insert(_ context.Context, m *domain.PaymentMethod) error {
	if m == nil || m.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[m.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *m
	s.data[m.ID] = &copy
	return nil
}

// InsertBulk adds multiple methods atomically. Fails entire batch on any duplicate.
func (s *PaymentMethodStore) InsertBulk(_ context.Context, methods []*domain.PaymentMethod) error {
	if len(methods) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(methods))
	for _, m := range methods {
		if m == nil || m.ID == 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[m.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[m.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[m.ID] = struct{}{}
	}

	for _, m := range methods {
		copy := *m
		s.data[m.ID] = &copy
	}
	return nil
}

// GetByID retrieves a payment method by id. Returns ErrNotFound if not exists.
func (s *PaymentMethodStore) GetByID(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *m
	return &copy, nil
}

// GetAll retrieves all payment methods ordered by id ASC.
func (s *PaymentMethodStore) GetAll(_ context.Context) ([]*domain.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.PaymentMethod, 0, len(s.data))
	for _, m := range s.data {
		copy := *m
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.PaymentMethodStore = (*PaymentMethodStore)(nil)
