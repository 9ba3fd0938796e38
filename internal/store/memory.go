package store

import (
	"context"
	"sync"

	"github.com/lumessence/concierge/internal/model/chat"
)

// MemoryStore implements ConversationStore with an in-memory map, suitable
// for tests. It stores encoded payloads so the decode path stays exercised.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (chat.Conversation, error) {
	s.mu.RLock()
	data, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return chat.Conversation{}, ErrNotFound
	}
	return decodeConversation(data)
}

func (s *MemoryStore) Save(_ context.Context, conv chat.Conversation) error {
	data, err := encodeConversation(conv)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[conv.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// PutRaw stores a payload verbatim, bypassing encoding. Tests use it to
// simulate corrupted or foreign entries.
func (s *MemoryStore) PutRaw(id string, data []byte) {
	s.mu.Lock()
	s.items[id] = append([]byte(nil), data...)
	s.mu.Unlock()
}
