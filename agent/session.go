package agent

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
)

// SessionStore keeps per-session message history in memory. History is
// copied on read so callers never share the backing slice.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]anthropic.MessageParam
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]anthropic.MessageParam)}
}

func (s *SessionStore) History(id string) []anthropic.MessageParam {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.sessions[id]
	out := make([]anthropic.MessageParam, len(history))
	copy(out, history)
	return out
}

func (s *SessionStore) Replace(id string, messages []anthropic.MessageParam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = messages
}
