package transcript

import (
	"sync"

	"github.com/jakejg/outward-bound-chat-fe/internal/model"
)

// Store defines the interface for transcript storage. The transcript is
// append-only: messages are never reordered or deleted once added.
type Store interface {
	Append(msg model.Message)
	Messages() []model.Message
	Len() int
}

type memoryStore struct {
	mu       sync.RWMutex
	messages []model.Message
}

// NewMemoryStore returns an in-memory Store. The transcript lives for the
// duration of the session and is discarded with it; nothing is persisted.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Append(msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a copy so callers can iterate without holding the lock.
func (s *memoryStore) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
