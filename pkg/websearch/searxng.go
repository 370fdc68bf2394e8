package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/shared/httputil"
	"github.com/aria-chat/aria/pkg/shared/stringutil"
)

// DefaultInstances is the ordered list of public SearXNG instances tried
// by the fallback client when no custom list is configured.
var DefaultInstances = []string{
	"https://searx.be",
	"https://search.brave4u.com",
	"https://priv.au",
	"https://searx.tiekoetter.com",
}

// FallbackClient tries an ordered list of public SearXNG instances and
// returns the first outcome with at least one result. A failed or empty
// attempt moves on to the next instance; instances after the first
// success are never contacted.
type FallbackClient struct {
	instances []string
	http      *http.Client
	log       zerolog.Logger
}

var _ Searcher = (*FallbackClient)(nil)

// NewFallbackClient builds a fallback client over the given instance
// URLs, in order. An empty list selects DefaultInstances.
func NewFallbackClient(instances []string, log zerolog.Logger) *FallbackClient {
	if len(instances) == 0 {
		instances = DefaultInstances
	}
	return &FallbackClient{
		instances: instances,
		http:      &http.Client{},
		log:       log.With().Str("component", "searxng").Logger(),
	}
}

type searxngRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Engine  string `json:"engine"`
}

type searxngResponse struct {
	Results []searxngRecord `json:"results"`
}

// Search walks the instance list in order. Each attempt gets its own
// deadline so a hung instance costs at most opts.Timeout before the next
// one is tried.
func (c *FallbackClient) Search(ctx context.Context, query string, opts Options) (*Outcome, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(DefaultFallbackTimeout)

	var attempts []error
	for _, instance := range c.instances {
		outcome, err := c.searchInstance(ctx, instance, query, opts)
		if err != nil {
			c.log.Warn().Err(err).Str("instance", instance).Msg("Search instance failed, trying next")
			attempts = append(attempts, fmt.Errorf("%s: %w", instance, err))
			continue
		}
		if len(outcome.Results) == 0 {
			c.log.Debug().Str("instance", instance).Msg("Search instance returned no results, trying next")
			attempts = append(attempts, fmt.Errorf("%s: no results", instance))
			continue
		}
		return outcome, nil
	}
	return nil, &AllFailedError{Attempts: attempts}
}

func (c *FallbackClient) searchInstance(ctx context.Context, instance, query string, opts Options) (*Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/search?q=%s&format=json", instance, url.QueryEscape(query))

	start := time.Now()
	body, status, err := httputil.GetJSON(ctx, c.http, searchURL, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("timed out after %s: %w", opts.Timeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, &BackendError{Backend: instance, Status: status, Body: string(body)}
	}

	var parsed searxngResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	records := parsed.Results
	if len(records) > opts.MaxResults {
		records = records[:opts.MaxResults]
	}
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		// Instances return raw engine snippets, often with HTML in them.
		results = append(results, Result{
			Title:   rec.Title,
			URL:     rec.URL,
			Content: stringutil.StripMarkup(rec.Content),
			Source:  stringutil.EnvOr(rec.Engine, "searxng"),
		})
	}

	return &Outcome{
		Query:        query,
		Backend:      instance,
		Results:      results,
		TotalResults: len(results),
		SearchTime:   time.Since(start),
	}, nil
}
