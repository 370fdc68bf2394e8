// Command aria runs the chat assistant server: the turn API, health
// check, and static frontend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/assistant"
	"github.com/aria-chat/aria/pkg/completion"
	"github.com/aria-chat/aria/pkg/config"
	"github.com/aria-chat/aria/pkg/httpapi"
	"github.com/aria-chat/aria/pkg/websearch"
)

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	backend, err := completion.NewClient(cfg.CompletionAPIKey, cfg.CompletionBaseURL, cfg.Model, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create completion client")
	}

	var searcher websearch.Searcher
	switch cfg.SearchMode {
	case config.SearchModeSearXNG:
		searcher = websearch.NewFallbackClient(cfg.SearchInstances, log)
	default:
		searcher = websearch.NewLangSearchClient(cfg.LangSearchAPIKey, cfg.LangSearchEndpoint, log)
	}

	aria := assistant.New(backend, searcher, cfg.SystemPrompt, log)
	api := httpapi.NewServer(aria, cfg.StaticDir, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("model", backend.Model()).
			Str("search_mode", cfg.SearchMode).
			Msg("Aria chat server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}

func newLogger() zerolog.Logger {
	var out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if os.Getenv("LOG_JSON") != "" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
