package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
	"github.com/Mergington-High/activity-signup-client/internal/platform/token"
	tokenstoreport "github.com/Mergington-High/activity-signup-client/internal/ports/out/tokenstore"
)

// ErrNotAuthenticated guards operations that require a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Service owns the current bearer token. It is the only component that
// mutates the token; every other component reads identity through it.
// It is safe for concurrent use.
type Service struct {
	store tokenstoreport.Store

	mu      sync.RWMutex
	token   string
	subject domain.SubjectID
}

func NewService(store tokenstoreport.Store) *Service {
	return &Service{store: store}
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Subject returns the display identity of the current session, empty when
// unauthenticated.
func (s *Service) Subject() domain.SubjectID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject
}

// Token returns the current bearer token and whether one is held.
func (s *Service) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Restore loads a persisted token at startup. An absent token, an
// unavailable store, or an undecodable token all leave the session
// unauthenticated; an undecodable token is also cleared from the store so
// later runs do not keep tripping over it. The returned error is advisory
// (worth logging), never fatal.
func (s *Service) Restore(ctx context.Context) error {
	raw, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, tokenstoreport.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load persisted token: %w", err)
	}

	sub, err := token.DecodeSubject(raw)
	if err != nil {
		_ = s.store.Clear(ctx)
		return fmt.Errorf("discarding persisted token: %w", err)
	}

	s.mu.Lock()
	s.token = raw
	s.subject = sub
	s.mu.Unlock()
	return nil
}

// Login establishes a session from a freshly issued token and persists it.
// A malformed token is rejected (the session is left untouched). Persistence
// is best-effort: when the store write fails the in-memory session is still
// live, and the wrapped error is returned for logging only.
func (s *Service) Login(ctx context.Context, raw string) error {
	sub, err := token.DecodeSubject(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = raw
	s.subject = sub
	s.mu.Unlock()

	if err := s.store.Save(ctx, raw); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Logout clears the session from memory and from the store. A store failure
// is non-fatal: the in-memory session is gone either way, and the error is
// returned for logging only.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.subject = ""
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}
	return nil
}
