// Package assistant orchestrates one conversation turn: decide whether to
// augment the prompt with web search results, call the completion
// backend, and when an unaugmented reply hedges, retry once with a rescue
// search. Search failures always degrade to answering without search
// context; only completion failures surface to the caller.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/classify"
	"github.com/aria-chat/aria/pkg/completion"
	"github.com/aria-chat/aria/pkg/websearch"
)

// Trigger records why a search happened during a turn.
type Trigger string

const (
	TriggerBusiness    Trigger = "business"
	TriggerExplicit    Trigger = "explicit"
	TriggerUncertainty Trigger = "uncertainty"
)

// Result caps per trigger class. Business lookups get a deeper result set
// because hours and addresses tend to be buried past the first few hits.
const (
	businessMaxResults = 8
	defaultMaxResults  = 5
)

// searchTimeout bounds each search call made on behalf of a turn.
const searchTimeout = 5 * time.Second

// searchInstruction is appended after formatted results so the model
// treats them as source material rather than part of the question.
const searchInstruction = "Please use the search results above to answer my question. " +
	"Cite specific details from the results where relevant."

// searchFailedNote degrades the turn gracefully when search is
// unavailable: the model answers from its own knowledge and says so.
const searchFailedNote = "(Note: a web search was attempted for this question but failed. " +
	"Please answer from your own knowledge and mention that the information may not be current.)"

// TurnRequest is one user message plus its conversation context.
type TurnRequest struct {
	Message      string
	History      []completion.Message
	EnableSearch bool
}

// SearchMetadata describes the search performed for a turn, attached to
// the result for observability.
type SearchMetadata struct {
	Query       string  `json:"query"`
	Backend     string  `json:"backend"`
	ResultCount int     `json:"resultCount"`
	Trigger     Trigger `json:"trigger"`
}

// TurnResult is the assistant's reply for one turn. Search is nil when no
// search succeeded.
type TurnResult struct {
	Reply  string
	Model  string
	Usage  completion.Usage
	Search *SearchMetadata
}

// Assistant runs the per-turn pipeline. It holds no mutable state, so one
// instance serves concurrent turns.
type Assistant struct {
	backend      completion.Backend
	searcher     websearch.Searcher
	systemPrompt string
	log          zerolog.Logger
}

// New constructs an assistant. A nil searcher disables search entirely,
// regardless of what turns request.
func New(backend completion.Backend, searcher websearch.Searcher, systemPrompt string, log zerolog.Logger) *Assistant {
	return &Assistant{
		backend:      backend,
		searcher:     searcher,
		systemPrompt: systemPrompt,
		log:          log.With().Str("component", "assistant").Logger(),
	}
}

// Respond processes one turn. The pipeline is strictly sequential: at
// most one search before the completion call, and at most one rescue
// search after it, never both.
func (a *Assistant) Respond(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	log := a.log.With().Str("turn_id", xid.New().String()).Logger()

	searchEnabled := req.EnableSearch && a.searcher != nil
	isBusiness := classify.IsBusinessQuery(req.Message)
	shouldSearch := searchEnabled && (classify.ShouldPerformWebSearch(req.Message) || isBusiness)

	userContent := req.Message
	var metadata *SearchMetadata

	if shouldSearch {
		query := classify.ExtractSearchQuery(req.Message)
		maxResults := defaultMaxResults
		trigger := TriggerExplicit
		if isBusiness {
			maxResults = businessMaxResults
			trigger = TriggerBusiness
		}

		outcome, err := a.search(ctx, query, maxResults)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("Pre-completion search failed, answering without context")
			userContent = req.Message + "\n\n" + searchFailedNote
		} else {
			log.Info().
				Str("query", query).
				Str("backend", outcome.Backend).
				Int("results", len(outcome.Results)).
				Str("trigger", string(trigger)).
				Msg("Search context attached to turn")
			userContent = augmentMessage(req.Message, outcome)
			metadata = &SearchMetadata{
				Query:       query,
				Backend:     outcome.Backend,
				ResultCount: len(outcome.Results),
				Trigger:     trigger,
			}
		}
	}

	reply, err := a.backend.Complete(ctx, a.buildMessages(req.History, userContent))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	// Rescue pass: only when no search ran up front and the model hedged.
	if searchEnabled && !shouldSearch && classify.IsUncertainResponse(reply.Content) {
		query := classify.ExtractSearchQuery(req.Message)
		outcome, err := a.search(ctx, query, defaultMaxResults)
		if err != nil {
			// Silent degrade: keep the uncertain reply rather than
			// surfacing a second error.
			log.Warn().Err(err).Str("query", query).Msg("Rescue search failed, keeping original reply")
		} else {
			rescued, err := a.backend.Complete(ctx, a.buildMessages(req.History, augmentMessage(req.Message, outcome)))
			if err != nil {
				log.Warn().Err(err).Msg("Rescue completion failed, keeping original reply")
			} else {
				log.Info().
					Str("query", query).
					Str("backend", outcome.Backend).
					Int("results", len(outcome.Results)).
					Msg("Uncertain reply rescued with search context")
				reply = rescued
				metadata = &SearchMetadata{
					Query:       query,
					Backend:     outcome.Backend,
					ResultCount: len(outcome.Results),
					Trigger:     TriggerUncertainty,
				}
			}
		}
	}

	return &TurnResult{
		Reply:  reply.Content,
		Model:  reply.Model,
		Usage:  reply.Usage,
		Search: metadata,
	}, nil
}

func (a *Assistant) search(ctx context.Context, query string, maxResults int) (*websearch.Outcome, error) {
	return a.searcher.Search(ctx, query, websearch.Options{
		MaxResults: maxResults,
		Timeout:    searchTimeout,
	})
}

func (a *Assistant) buildMessages(history []completion.Message, userContent string) []completion.Message {
	messages := make([]completion.Message, 0, len(history)+2)
	if a.systemPrompt != "" {
		messages = append(messages, completion.Message{Role: completion.RoleSystem, Content: a.systemPrompt})
	}
	messages = append(messages, history...)
	messages = append(messages, completion.Message{Role: completion.RoleUser, Content: userContent})
	return messages
}

func augmentMessage(message string, outcome *websearch.Outcome) string {
	return message + "\n\n" + websearch.FormatResults(outcome) + "\n\n" + searchInstruction
}
