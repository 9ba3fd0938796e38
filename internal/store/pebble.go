package store

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog/log"

	"github.com/lumessence/concierge/internal/model/chat"
)

// PebbleStore keeps conversations in a Pebble database, one JSON value per
// conversation under a "conversation:<id>" key.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the database at path.
func OpenPebble(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("conversation store opened")
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Load(_ context.Context, id string) (chat.Conversation, error) {
	value, closer, err := s.db.Get(conversationKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return chat.Conversation{}, ErrNotFound
		}
		return chat.Conversation{}, err
	}
	data := append([]byte(nil), value...)
	if err := closer.Close(); err != nil {
		return chat.Conversation{}, err
	}
	return decodeConversation(data)
}

func (s *PebbleStore) Save(_ context.Context, conv chat.Conversation) error {
	data, err := encodeConversation(conv)
	if err != nil {
		return err
	}
	return s.db.Set(conversationKey(conv.ID), data, pebble.Sync)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func conversationKey(id string) []byte {
	return []byte("conversation:" + id)
}
