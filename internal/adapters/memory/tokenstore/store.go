package tokenstore

import (
	"context"
	"sync"

	"github.com/Mergington-High/activity-signup-client/internal/ports/out/tokenstore"
)

// Store is an in-memory implementation of tokenstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewStore() *Store { return &Store{} }

func (s *Store) Load(ctx context.Context) (string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return "", tokenstore.ErrNotFound
	}
	return s.token, nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
