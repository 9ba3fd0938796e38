// Package relay performs the single upstream exchange that produces
// assistant replies from a message history.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/lumessence/concierge/internal/model/chat"
)

// replyPaths is the fallback chain for locating the reply text in the
// upstream payload. The order is part of the behavioral contract with
// deployed endpoints; do not reorder.
var replyPaths = []string{
	"choices.0.message.content",
	"choices.0.text",
	"reply",
	"answer",
	"message.content",
	"message.text",
}

// ErrUnexpectedShape reports a 2xx payload with no recognized reply field.
var ErrUnexpectedShape = errors.New("upstream reply has no recognized shape")

// StatusError reports a non-success HTTP status from the upstream endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// Client talks to the upstream chat-completion endpoint. No credential is
// attached; the endpoint holds its own secrets.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Complete posts the entire message sequence and resolves the reply text.
// One call, no retry: a failure here is one user-visible failure.
func (c *Client) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	payload, err := json.Marshal(map[string]any{"messages": messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upstream response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Str("body", string(body)).
			Msg("upstream returned non-success status")
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	for _, path := range replyPaths {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}

	log.Error().Str("payload", string(body)).Msg("upstream reply matched no known shape")
	return "", ErrUnexpectedShape
}
