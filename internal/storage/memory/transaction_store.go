package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Transaction
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		data: make(map[int64]*domain.Transaction),
	}
}

// Insert adds a new transaction. Returns ErrDuplicateKey if the id exists.
func (s *TransactionStore) Insert(_ context.Context, t *domain.Transaction) error {
	if t == nil || t.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *t
	s.data[t.ID] = &copy
	return nil
}

// InsertBulk adds multiple transactions atomically. Fails entire batch on any duplicate.
func (s *TransactionStore) InsertBulk(_ context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(txs))
	for _, t := range txs {
		if t == nil || t.ID == 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[t.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[t.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[t.ID] = struct{}{}
	}

	for _, t := range txs {
		copy := *t
		s.data[t.ID] = &copy
	}
	return nil
}

// GetByID retrieves a transaction by id. Returns ErrNotFound if not exists.
func (s *TransactionStore) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *t
	return &copy, nil
}

// GetByUserID retrieves all transactions for a user, ordered by initiated_at ASC, id ASC.
func (s *TransactionStore) GetByUserID(_ context.Context, userID int64) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, t := range s.data {
		if t.UserID == userID {
			copy := *t
			result = append(result, &copy)
		}
	}

	sortTransactions(result)
	return result, nil
}

// GetAll retrieves all transactions ordered by initiated_at ASC, id ASC.
func (s *TransactionStore) GetAll(_ context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Transaction, 0, len(s.data))
	for _, t := range s.data {
		copy := *t
		result = append(result, &copy)
	}

	sortTransactions(result)
	return result, nil
}

func sortTransactions(txs []*domain.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].InitiatedAt.Equal(txs[j].InitiatedAt) {
			return txs[i].InitiatedAt.Before(txs[j].InitiatedAt)
		}
		return txs[i].ID < txs[j].ID
	})
}

var _ storage.TransactionStore = (*TransactionStore)(nil)
