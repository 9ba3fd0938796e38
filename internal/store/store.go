// Package store persists conversations as JSON values in a key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lumessence/concierge/internal/model/chat"
)

var (
	ErrNotFound = errors.New("conversation not found")

	errNoMessageSequence = errors.New("stored conversation has no message sequence")
)

// ConversationStore abstracts durable conversation persistence.
type ConversationStore interface {
	// Load returns the conversation stored under id, ErrNotFound when absent,
	// or a decode error when the stored payload is not a valid conversation.
	Load(ctx context.Context, id string) (chat.Conversation, error)
	Save(ctx context.Context, conv chat.Conversation) error
	Close() error
}

func encodeConversation(conv chat.Conversation) ([]byte, error) {
	return json.Marshal(conv)
}

// decodeConversation rejects payloads whose messages field is missing or not
// a sequence; callers treat that the same as an absent entry.
func decodeConversation(data []byte) (chat.Conversation, error) {
	var conv chat.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return chat.Conversation{}, err
	}
	if conv.Messages == nil {
		return chat.Conversation{}, errNoMessageSequence
	}
	return conv, nil
}
