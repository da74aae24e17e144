package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// InMemoryStore stores users in memory. It backs tests and database-less runs.
type InMemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

// NewInMemory constructs an empty in-memory user store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, users: make(map[string]*models.User)}
}

// FindByUsername returns the user with the given username.
func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %q not found: %w", username, sentinel.ErrNotFound)
}

// FindOrCreateByUsername atomically finds a user by username or creates it
// with the default role and the username as fullname. The created flag lets
// the service count first-time users.
func (s *InMemoryStore) FindOrCreateByUsername(_ context.Context, username string) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[username]; ok {
		return user, false, nil
	}

	user := &models.User{
		ID:        s.nextID,
		Username:  username,
		Fullname:  username,
		Role:      models.DefaultRole,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.users[username] = user
	return user, true, nil
}
