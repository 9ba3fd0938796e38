package relay_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chat "github.com/lumessence/concierge/internal/model/chat"
	"github.com/lumessence/concierge/internal/service/relay"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func messages() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: chat.SystemPrompt},
		{Role: chat.RoleUser, Content: "what's a good cleanser?"},
	}
}

func TestCompleteResolvesEachShape(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"choices":[{"message":{"content":"Try Product X"}}]}`, "Try Product X"},
		{`{"choices":[{"text":"from choices text"}]}`, "from choices text"},
		{`{"reply":"from reply"}`, "from reply"},
		{`{"answer":"from answer"}`, "from answer"},
		{`{"message":{"content":"from message content"}}`, "from message content"},
		{`{"message":{"text":"from message text"}}`, "from message text"},
	}

	for _, tc := range cases {
		srv := serve(t, http.StatusOK, tc.body)
		client := relay.NewClient(srv.URL, time.Second)

		got, err := client.Complete(context.Background(), messages())
		if err != nil {
			t.Fatalf("Complete(%s) err: %v", tc.body, err)
		}
		if got != tc.want {
			t.Fatalf("Complete(%s) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestCompleteFallbackOrder(t *testing.T) {
	// An earlier shape in the chain wins even when later ones are present.
	srv := serve(t, http.StatusOK, `{"reply":"lower priority","choices":[{"text":"wins"}]}`)
	client := relay.NewClient(srv.URL, time.Second)

	got, err := client.Complete(context.Background(), messages())
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if got != "wins" {
		t.Fatalf("fallback order violated: got %q", got)
	}
}

func TestCompleteSkipsEmptyValues(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"choices":[{"message":{"content":""}}],"reply":"fallback"}`)
	client := relay.NewClient(srv.URL, time.Second)

	got, err := client.Complete(context.Background(), messages())
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("empty string must not satisfy the chain: got %q", got)
	}
}

func TestCompleteUnexpectedShape(t *testing.T) {
	srv := serve(t, http.StatusOK, `{}`)
	client := relay.NewClient(srv.URL, time.Second)

	_, err := client.Complete(context.Background(), messages())
	if !errors.Is(err, relay.ErrUnexpectedShape) {
		t.Fatalf("expected ErrUnexpectedShape, got %v", err)
	}
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, `upstream exploded`)
	client := relay.NewClient(srv.URL, time.Second)

	_, err := client.Complete(context.Background(), messages())
	var statusErr *relay.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status code: %d", statusErr.Code)
	}
	if statusErr.Body != "upstream exploded" {
		t.Fatalf("body not captured: %q", statusErr.Body)
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := relay.NewClient(srv.URL, time.Second)

	_, err := client.Complete(context.Background(), messages())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	var statusErr *relay.StatusError
	if errors.As(err, &statusErr) || errors.Is(err, relay.ErrUnexpectedShape) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
}

func TestCompleteSendsFullHistory(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"reply":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	client := relay.NewClient(srv.URL, time.Second)
	if _, err := client.Complete(context.Background(), messages()); err != nil {
		t.Fatalf("Complete err: %v", err)
	}

	if !strings.Contains(string(gotBody), `"what's a good cleanser?"`) {
		t.Fatalf("request body missing user turn: %s", gotBody)
	}
	if !strings.Contains(string(gotBody), `"role":"system"`) {
		t.Fatalf("request body missing system prompt: %s", gotBody)
	}
}
