// Package websearch queries external web search backends and normalizes
// their results for prompt augmentation. Two client strategies are
// provided: a single hosted API (LangSearch) and an ordered fallback
// across public SearXNG instances.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxResults caps how many results a search returns when the
	// caller does not ask for a specific count.
	DefaultMaxResults = 5

	// DefaultHostedTimeout bounds a hosted API call.
	DefaultHostedTimeout = 10 * time.Second

	// DefaultFallbackTimeout bounds each individual fallback instance
	// attempt, not the whole fallback sequence.
	DefaultFallbackTimeout = 5 * time.Second
)

// ErrInvalidQuery is returned when the search query is empty.
var ErrInvalidQuery = errors.New("search query must be a non-empty string")

// Options controls a single search call.
type Options struct {
	// MaxResults caps the normalized result count. Zero means
	// DefaultMaxResults.
	MaxResults int

	// Timeout bounds the backend call (per attempt for the fallback
	// client). Zero means the client's default.
	Timeout time.Duration
}

func (o Options) withDefaults(defaultTimeout time.Duration) Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Result is one normalized search result. Fields are never left unset by
// the clients: missing values become empty strings.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Outcome is the normalized product of one search attempt. It is built
// once, formatted into prompt text, and discarded.
type Outcome struct {
	Query        string        `json:"query"`
	Backend      string        `json:"backend"`
	Results      []Result      `json:"results"`
	TotalResults int           `json:"total_results"`
	SearchTime   time.Duration `json:"search_time"`
}

// Searcher is implemented by both client strategies and consumed by the
// turn orchestrator.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) (*Outcome, error)
}

// BackendError reports a non-success HTTP status from a search backend.
type BackendError struct {
	Backend string
	Status  int
	Body    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Backend, e.Status, e.Body)
}

// AllFailedError is returned by the fallback client when every configured
// instance either errored or returned zero results.
type AllFailedError struct {
	Attempts []error
}

func (e *AllFailedError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("all %d search backends failed: %s", len(e.Attempts), strings.Join(msgs, "; "))
}

func validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrInvalidQuery
	}
	return nil
}
