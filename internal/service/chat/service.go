// Package chat owns conversation state and the submit pipeline.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumessence/concierge/internal/metrics"
	model "github.com/lumessence/concierge/internal/model/chat"
	"github.com/lumessence/concierge/internal/service/profile"
	"github.com/lumessence/concierge/internal/service/relay"
	"github.com/lumessence/concierge/internal/store"
)

var (
	ErrEmptyInput     = errors.New("input is empty")
	ErrSubmitInFlight = errors.New("a submission is already in flight for this conversation")
)

// Fixed user-facing notices. One per failure class; never reworded per error.
const (
	NoticeRetryLater      = "Sorry, something went wrong on our end. Please try again in a moment."
	NoticeUnexpectedReply = "Sorry, I received a reply I couldn't read. Please try again."
	NoticeUnreachable     = "I couldn't reach the concierge service. Please check your connection and try again."
)

// Notice kinds, exposed to the widget so it can distinguish failure classes.
const (
	KindUpstreamError   = "upstream_error"
	KindUnexpectedReply = "unexpected_reply"
	KindUnreachable     = "unreachable"
)

// Completer produces an assistant reply from a message history.
type Completer interface {
	Complete(ctx context.Context, messages []model.Message) (string, error)
}

// Outcome describes what a submission produced. Exactly one of Reply or
// Notice is set; Ack accompanies either when a name was just learned.
type Outcome struct {
	Ack    *model.Message
	Reply  *model.Message
	Notice string
	Kind   string
}

// Service encapsulates conversation state management. All mutation goes
// through it and every mutation is persisted immediately (best-effort).
type Service struct {
	store store.ConversationStore
	relay Completer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService wires the controller to its store and upstream completer.
func NewService(st store.ConversationStore, completer Completer) *Service {
	return &Service{
		store:    st,
		relay:    completer,
		inFlight: make(map[string]struct{}),
	}
}

// LoadOrSeed returns the stored conversation for id, or a freshly seeded one
// when nothing valid is stored. Seeding persists immediately. Storage errors
// degrade to a fresh conversation; they are never surfaced.
func (s *Service) LoadOrSeed(ctx context.Context, id string) model.Conversation {
	conv, err := s.store.Load(ctx, id)
	if err == nil {
		return conv
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Str("conversation", id).Msg("stored conversation unusable, reseeding")
	}

	conv = model.Seeded(id)
	s.persist(ctx, conv)
	metrics.ConversationsSeeded.Inc()
	return conv
}

// Submit runs one turn: append the user message, extract profile facts,
// relay the full history upstream, and merge the reply. Upstream failures
// are recovered locally into a fixed notice, never returned as an error.
func (s *Service) Submit(ctx context.Context, id, text string) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, ErrEmptyInput
	}

	if !s.acquire(id) {
		return Outcome{}, ErrSubmitInFlight
	}
	defer s.release(id)

	conv := s.LoadOrSeed(ctx, id)

	conv.Messages = append(conv.Messages, model.Message{Role: model.RoleUser, Content: text})
	metrics.MessagesTotal.WithLabelValues(model.RoleUser).Inc()
	s.persist(ctx, conv)

	var outcome Outcome
	if conv.Context.UserName == "" {
		if name, ok := profile.ExtractName(text); ok {
			outcome.Ack = s.recordName(ctx, &conv, name)
		}
	}

	start := time.Now()
	replyText, err := s.relay.Complete(ctx, conv.Messages)
	metrics.ExchangeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome.Notice, outcome.Kind = classify(err)
		metrics.ExchangesTotal.WithLabelValues(outcome.Kind).Inc()
		return outcome, nil
	}
	metrics.ExchangesTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	reply := model.Message{Role: model.RoleAssistant, Content: replyText}
	conv.Messages = append(conv.Messages, reply)
	metrics.MessagesTotal.WithLabelValues(model.RoleAssistant).Inc()
	s.persist(ctx, conv)

	outcome.Reply = &reply
	return outcome, nil
}

// recordName applies the one non-append mutation: the profile note lands at
// index 1, right after the system prompt and before all prior turns. The
// acknowledgement is generated locally, without an upstream call.
func (s *Service) recordName(ctx context.Context, conv *model.Conversation, name string) *model.Message {
	conv.Context.UserName = name

	note := model.Message{Role: model.RoleSystem, Content: model.ProfileNote(name)}
	msgs := append(conv.Messages, model.Message{})
	copy(msgs[2:], msgs[1:])
	msgs[1] = note
	conv.Messages = msgs

	ack := model.Message{Role: model.RoleAssistant, Content: model.Acknowledgement(name)}
	conv.Messages = append(conv.Messages, ack)
	metrics.MessagesTotal.WithLabelValues(model.RoleAssistant).Inc()

	s.persist(ctx, *conv)
	log.Info().Str("conversation", conv.ID).Str("name", name).Msg("user name learned")
	return &ack
}

// persist writes the conversation, swallowing failures: persistence is
// best-effort and never aborts a turn.
func (s *Service) persist(ctx context.Context, conv model.Conversation) {
	if err := s.store.Save(ctx, conv); err != nil {
		log.Error().Err(err).Str("conversation", conv.ID).Msg("failed to persist conversation")
	}
}

func classify(err error) (notice, kind string) {
	var statusErr *relay.StatusError
	switch {
	case errors.As(err, &statusErr):
		return NoticeRetryLater, KindUpstreamError
	case errors.Is(err, relay.ErrUnexpectedShape):
		return NoticeUnexpectedReply, KindUnexpectedReply
	default:
		log.Error().Err(err).Msg("upstream exchange failed")
		return NoticeUnreachable, KindUnreachable
	}
}

// acquire enforces at-most-one-in-flight per conversation.
func (s *Service) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *Service) release(id string) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}
