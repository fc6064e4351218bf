package draft

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("draft session not found")

// Sessions is the in-memory registry of order-authoring sessions.
// Drafts live entirely within one session and are discarded on commit
// or cancel; they are never persisted standalone.
type Sessions struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewSessions() *Sessions {
	return &Sessions{drafts: make(map[string]*Draft)}
}

func (s *Sessions) Create() (string, *Draft) {
	id := uuid.NewString()
	d := New()

	s.mu.Lock()
	s.drafts[id] = d
	s.mu.Unlock()
	return id, d
}

func (s *Sessions) Get(id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return d, nil
}

func (s *Sessions) Discard(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}
