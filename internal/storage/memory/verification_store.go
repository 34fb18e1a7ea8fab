package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// VerificationStore is an in-memory implementation of storage.VerificationStore.
type VerificationStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.UserVerification // keyed by user_id
}

// NewVerificationStore creates a new in-memory verification store.
func NewVerificationStore() *VerificationStore {
	return &VerificationStore{
		data: make(map[int64]*domain.UserVerification),
	}
}

// Insert adds a verification record. Returns ErrDuplicateKey if user_id exists.
func (s *VerificationStore) Insert(_ context.Context, v *domain.UserVerification) error {
	if v == nil || v.UserID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[v.UserID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *v
	s.data[v.UserID] = &copy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *VerificationStore) InsertBulk(_ context.Context, records []*domain.UserVerification) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(records))
	for _, v := range records {
		if v == nil || v.UserID == 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[v.UserID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[v.UserID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[v.UserID] = struct{}{}
	}

	for _, v := range records {
		copy := *v
		s.data[v.UserID] = &copy
	}
	return nil
}

// GetByUserID retrieves the verification record for a user.
func (s *VerificationStore) GetByUserID(_ context.Context, userID int64) (*domain.UserVerification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.data[userID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *v
	return &copy, nil
}

// GetAll retrieves all verification records ordered by user_id ASC.
func (s *VerificationStore) GetAll(_ context.Context) ([]*domain.UserVerification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.UserVerification, 0, len(s.data))
	for _, v := range s.data {
		copy := *v
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UserID < result[j].UserID
	})

	return result, nil
}

var _ storage.VerificationStore = (*VerificationStore)(nil)
