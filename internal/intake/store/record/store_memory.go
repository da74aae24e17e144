package record

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/sentinel"
)

// InMemoryStore stores identity records in memory. It backs tests and
// database-less runs.
type InMemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]*models.IdentityRecord
}

// NewInMemory constructs an empty in-memory record store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, records: make(map[string]*models.IdentityRecord)}
}

// Insert persists a new record. Inserting an identity number that already
// exists fails with sentinel.ErrAlreadyUsed and leaves the stored record
// untouched.
func (s *InMemoryStore) Insert(_ context.Context, record *models.IdentityRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.IDNumber]; ok {
		return fmt.Errorf("identity number %s: %w", record.IDNumber, sentinel.ErrAlreadyUsed)
	}

	stored := *record
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.nextID++
	s.records[stored.IDNumber] = &stored

	record.ID = stored.ID
	record.CreatedAt = stored.CreatedAt
	return nil
}

// FindByIDNumber returns the record with the given identity number.
func (s *InMemoryStore) FindByIDNumber(_ context.Context, idNumber string) (*models.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[idNumber]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("identity number %s not found: %w", idNumber, sentinel.ErrNotFound)
}

// ListByUser returns up to limit records owned by username, newest first.
func (s *InMemoryStore) ListByUser(_ context.Context, username string, limit int) ([]*models.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.IdentityRecord, 0)
	for _, record := range s.records {
		if record.Username == username {
			matched = append(matched, record)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
