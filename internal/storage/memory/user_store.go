package memory

import (
	"context"
	"sort"
	"sync"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// UserStore is an in-memory implementation of storage.UserStore.
type UserStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		data: make(map[int64]*domain.User),
	}
}

// Insert adds a new user. Returns ErrDuplicateKey if the id exists.
func (s *UserStore) Insert(_ context.Context, u *domain.User) error {
	if u == nil || u.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[u.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *u
	s.data[u.ID] = &copy
	return nil
}

// InsertBulk adds multiple users atomically. Fails entire batch on any duplicate.
func (s *UserStore) InsertBulk(_ context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(users))
	for _, u := range users {
		if u == nil || u.ID == 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[u.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[u.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[u.ID] = struct{}{}
	}

	for _, u := range users {
		copy := *u
		s.data[u.ID] = &copy
	}
	return nil
}

// GetByID retrieves a user by id. Returns ErrNotFound if not exists.
func (s *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *u
	return &copy, nil
}

// GetAll retrieves all users ordered by id ASC.
func (s *UserStore) GetAll(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.data))
	for _, u := range s.data {
		copy := *u
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.UserStore = (*UserStore)(nil)
