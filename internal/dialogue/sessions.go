package dialogue

import (
	"sync"
	"time"

	"comanda/internal/models"
)

// SessionStore keeps live conversations in memory. Conversations are never
// persisted: created on first contact, discarded on reset. Each conversation
// has a single writer (its interactive session); the lock only guards the map.
type SessionStore struct {
	mu    sync.RWMutex
	convs map[string]*models.Conversation
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{convs: make(map[string]*models.Conversation)}
}

// GetOrCreate returns the conversation with the given id, creating it with
// the opening greeting when it does not exist yet.
func (s *SessionStore) GetOrCreate(id, lang string) *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.convs[id]; ok {
		return conv
	}
	conv := &models.Conversation{
		ID:        id,
		Phase:     models.PhaseIdle,
		CreatedAt: time.Now(),
	}
	conv.Append(models.RoleAssistant, Greeting(lang))
	s.convs[id] = conv
	return conv
}

// Get returns an existing conversation.
func (s *SessionStore) Get(id string) (*models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[id]
	return conv, ok
}

// Delete discards a conversation ("new chat").
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, id)
}
