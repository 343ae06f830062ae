package session

import (
	"context"
	"sync"

	"storefront-service/internal/models"
)

// Store persists the session's token, username and balance. The session is
// written on login success, cleared on logout, and read by the cart and
// checkout services. The balance field is additionally rewritten by the
// local debit after a successful checkout.
type Store interface {
	Get(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process Store used in tests and single-binary runs
type MemoryStore struct {
	mu   sync.Mutex
	sess models.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current session; a zero session means logged out
func (s *MemoryStore) Get(ctx context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, nil
}

// Save replaces the stored session
func (s *MemoryStore) Save(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

// Clear removes the stored session
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = models.Session{}
	return nil
}
