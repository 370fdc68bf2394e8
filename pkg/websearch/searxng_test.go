package websearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func searxngHandler(t *testing.T, body string, status int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestFallbackFirstSuccessWins(t *testing.T) {
	failing := httptest.NewServer(searxngHandler(t, "internal error", http.StatusInternalServerError))
	defer failing.Close()

	empty := httptest.NewServer(searxngHandler(t, `{"results": []}`, http.StatusOK))
	defer empty.Close()

	good := httptest.NewServer(searxngHandler(t, `{"results": [
		{"title": "One", "url": "https://one", "content": "first", "engine": "duckduckgo"},
		{"title": "Two", "url": "https://two", "content": "second"}
	]}`, http.StatusOK))
	defer good.Close()

	var extraCalls atomic.Int64
	extra := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		extraCalls.Add(1)
		w.Write([]byte(`{"results": [{"title": "never", "url": "https://never"}]}`))
	}))
	defer extra.Close()

	client := NewFallbackClient([]string{failing.URL, empty.URL, good.URL, extra.URL}, zerolog.Nop())
	outcome, err := client.Search(context.Background(), "anything", Options{MaxResults: 5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if outcome.Backend != good.URL {
		t.Errorf("Backend = %q, want %q", outcome.Backend, good.URL)
	}
	if len(outcome.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(outcome.Results))
	}
	if outcome.Results[0].Source != "duckduckgo" {
		t.Errorf("Source = %q, want engine name", outcome.Results[0].Source)
	}
	if outcome.Results[1].Source != "searxng" {
		t.Errorf("Source = %q, want searxng default", outcome.Results[1].Source)
	}
	if calls := extraCalls.Load(); calls != 0 {
		t.Errorf("instance after first success was called %d times", calls)
	}
}

func TestFallbackAllFail(t *testing.T) {
	failing := httptest.NewServer(searxngHandler(t, "boom", http.StatusBadGateway))
	defer failing.Close()

	empty := httptest.NewServer(searxngHandler(t, `{"results": []}`, http.StatusOK))
	defer empty.Close()

	client := NewFallbackClient([]string{failing.URL, empty.URL}, zerolog.Nop())
	_, err := client.Search(context.Background(), "anything", Options{})

	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("error = %v, want *AllFailedError", err)
	}
	if len(allFailed.Attempts) != 2 {
		t.Errorf("recorded %d attempts, want 2", len(allFailed.Attempts))
	}
}

func TestFallbackTruncatesResults(t *testing.T) {
	srv := httptest.NewServer(searxngHandler(t, `{"results": [
		{"title": "1", "url": "u1"}, {"title": "2", "url": "u2"},
		{"title": "3", "url": "u3"}, {"title": "4", "url": "u4"}
	]}`, http.StatusOK))
	defer srv.Close()

	client := NewFallbackClient([]string{srv.URL}, zerolog.Nop())
	outcome, err := client.Search(context.Background(), "anything", Options{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(outcome.Results) != 2 {
		t.Fatalf("got %d results, want MaxResults cap of 2", len(outcome.Results))
	}
}

func TestFallbackInvalidQuery(t *testing.T) {
	client := NewFallbackClient(nil, zerolog.Nop())
	if _, err := client.Search(context.Background(), "", Options{}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
}
