package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/shared/httputil"
	"github.com/aria-chat/aria/pkg/shared/stringutil"
)

// DefaultLangSearchEndpoint is the hosted search API endpoint.
const DefaultLangSearchEndpoint = "https://api.langsearch.com/v1/web-search"

// LangSearchClient queries the hosted LangSearch web search API with a
// static key. One authenticated HTTPS call per search, no fallback.
type LangSearchClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      zerolog.Logger
}

var _ Searcher = (*LangSearchClient)(nil)

// NewLangSearchClient builds a hosted search client. An empty endpoint
// selects the default API URL.
func NewLangSearchClient(apiKey, endpoint string, log zerolog.Logger) *LangSearchClient {
	if endpoint == "" {
		endpoint = DefaultLangSearchEndpoint
	}
	return &LangSearchClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{},
		log:      log.With().Str("component", "langsearch").Logger(),
	}
}

type langSearchRequest struct {
	Query string `json:"query"`
	Num   int    `json:"num"`
}

type langSearchRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Source      string `json:"source"`
}

type langSearchResponse struct {
	Data []langSearchRecord `json:"data"`
}

// Search performs one hosted API call and normalizes the response.
func (c *LangSearchClient) Search(ctx context.Context, query string, opts Options) (*Outcome, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(DefaultHostedTimeout)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	body, status, err := httputil.PostJSON(ctx, c.http, c.endpoint, map[string]string{
		"x-api-key": c.apiKey,
	}, langSearchRequest{Query: query, Num: opts.MaxResults})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("search timed out after %s: %w", opts.Timeout, ctx.Err())
		}
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, &BackendError{Backend: "LangSearch API", Status: status, Body: string(body)}
	}

	var parsed langSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	records := parsed.Data
	if len(records) > opts.MaxResults {
		records = records[:opts.MaxResults]
	}
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, Result{
			Title:   rec.Title,
			URL:     stringutil.Coalesce(rec.URL, rec.Link),
			Content: stringutil.Coalesce(rec.Snippet, rec.Description, rec.Content),
			Source:  stringutil.EnvOr(rec.Source, "web"),
		})
	}

	elapsed := time.Since(start)
	c.log.Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("elapsed", elapsed).
		Msg("Hosted search completed")

	return &Outcome{
		Query:        query,
		Backend:      "LangSearch API",
		Results:      results,
		TotalResults: len(results),
		SearchTime:   elapsed,
	}, nil
}
