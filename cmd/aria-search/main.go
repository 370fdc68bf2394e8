// Command aria-search runs one query against the configured search
// backend and prints the outcome. Useful for checking keys and instance
// lists without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/config"
	"github.com/aria-chat/aria/pkg/websearch"
)

func main() {
	maxResults := flag.Int("n", 3, "maximum number of results")
	timeout := flag.Duration("timeout", 10*time.Second, "per-attempt timeout")
	flag.Parse()

	query := strings.Join(flag.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: aria-search [-n count] [-timeout d] <query>")
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	var searcher websearch.Searcher
	switch cfg.SearchMode {
	case config.SearchModeSearXNG:
		searcher = websearch.NewFallbackClient(cfg.SearchInstances, log)
	default:
		searcher = websearch.NewLangSearchClient(cfg.LangSearchAPIKey, cfg.LangSearchEndpoint, log)
	}

	outcome, err := searcher.Search(context.Background(), query, websearch.Options{
		MaxResults: *maxResults,
		Timeout:    *timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Search failed")
	}

	fmt.Printf("Query:   %s\n", outcome.Query)
	fmt.Printf("Backend: %s\n", outcome.Backend)
	fmt.Printf("Results: %d in %dms\n\n", outcome.TotalResults, outcome.SearchTime.Milliseconds())
	for i, result := range outcome.Results {
		fmt.Printf("%d. %s\n   URL: %s\n", i+1, result.Title, result.URL)
		if result.Content != "" {
			snippet := result.Content
			if len(snippet) > 200 {
				snippet = snippet[:200] + "..."
			}
			fmt.Printf("   %s\n", snippet)
		}
		fmt.Println()
	}
}
