// Package classify decides whether a user message should trigger a web
// search and what to search for. All functions are pure pattern matching
// over the message text: no I/O, no state, deterministic. The rule lists
// are fixed and evaluated with any-match-wins semantics.
package classify

import (
	"regexp"
	"strings"
)

// businessPatterns match messages asking about a business: hours, contact
// details, directions, menus. The category noun list is intentionally small
// and fixed so classification stays predictable.
var businessPatterns = []*regexp.Regexp{
	// Direct hours/open/closed phrasing
	regexp.MustCompile(`(?i)(?:hours|open|opening|closing|close)(?: (?:for|of|at))? [A-Z]`),
	regexp.MustCompile(`(?i)(?:is|are) (?:the )?\w+ (?:open|closed)`),
	regexp.MustCompile(`(?i)(?:when|what time) (?:does|do|is|are) (?:the )?\w+ (?:open|close)`),

	// Business category nouns
	regexp.MustCompile(`(?i)(?:restaurant|cafe|coffee shop|bar|pub|hotel|motel|store|shop|mall|gym|bank|hospital|clinic|pharmacy|gas station|salon|spa|dentist|doctor)\b`),

	// Location plus category
	regexp.MustCompile(`(?i)(?:near me|nearby|in|at) (?:the )?(?:restaurant|cafe|store|shop|hotel|gym|bank)`),

	// Contact / address / menu requests aimed at a proper noun
	regexp.MustCompile(`(?i)(?:phone number|address|location|directions to|how to get to|contact) (?:for|of|to)? [A-Z]`),
	regexp.MustCompile(`(?i)(?:menu|prices|rates|cost|reservations) (?:for|at|of) [A-Z]`),
	regexp.MustCompile(`(?i)\b(?:hours|location|address|phone|menu|website) (?:for|of|at) [A-Z]\w+`),
	regexp.MustCompile(`(?i)\b[A-Z]\w+ (?:restaurant|cafe|store|shop|hotel|gym|bank|hours|location)`),

	regexp.MustCompile(`(?i)business hours`),
	regexp.MustCompile(`(?i)hours of operation`),
}

// searchPatterns match explicit search requests, recency language and
// real-time-data questions that the model's training data cannot answer.
var searchPatterns = []*regexp.Regexp{
	// Explicit search verbs
	regexp.MustCompile(`(?i)search (?:for|the web|online)`),
	regexp.MustCompile(`(?i)look up`),
	regexp.MustCompile(`(?i)find (?:information|info) (?:on|about)`),
	regexp.MustCompile(`(?i)web search`),
	regexp.MustCompile(`(?i)google`),
	regexp.MustCompile(`(?i)browse (?:for|the web)`),

	// Recency language
	regexp.MustCompile(`(?i)what'?s (?:the latest|happening|new|current)`),
	regexp.MustCompile(`(?i)current (?:news|events|information|status|price|weather)`),
	regexp.MustCompile(`(?i)(?:latest|recent|newest|updated) (?:news|information|version|release)`),
	regexp.MustCompile(`(?i)(?:today|this week|this month|right now)`),

	// Real-time data
	regexp.MustCompile(`(?i)(?:stock price|weather|temperature|forecast)`),
	regexp.MustCompile(`(?i)(?:score|result) of (?:the )?(?:game|match)`),

	// Factual lookups that go stale
	regexp.MustCompile(`(?i)(?:when|what time) (?:is|was|did)`),
	regexp.MustCompile(`(?i)who (?:is|won|became)`),
	regexp.MustCompile(`(?i)(?:price|cost) of`),
}

// uncertaintyPatterns match the hedging language models produce when they
// lack the knowledge to answer.
var uncertaintyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I (?:don't|do not|dont) (?:have|know)`),
	regexp.MustCompile(`(?i)I(?: am|'m) not sure`),
	regexp.MustCompile(`(?i)I (?:don't|do not) have (?:access to|information|data)`),
	regexp.MustCompile(`(?i)I (?:cannot|can't|can not) provide`),
	regexp.MustCompile(`(?i)I (?:lack|am missing) (?:the )?(?:information|data|knowledge)`),
	regexp.MustCompile(`(?i)(?:my training(?: data)?|my knowledge|my data) (?:does not|doesn't|ended|cuts off|is limited)`),
	regexp.MustCompile(`(?i)I would need (?:to|more) (?:search|look|check)`),
	regexp.MustCompile(`(?i)(?:unfortunately|regrettably|sadly),? I (?:don't|do not|cannot)`),
	regexp.MustCompile(`(?i)as an AI(?: language model)?,? I (?:don't|do not|cannot)`),
	regexp.MustCompile(`(?i)I apologize, but I (?:don't|do not|cannot)`),
	regexp.MustCompile(`(?i)without (?:current|real-time|up-to-date|recent) (?:information|data)`),
	regexp.MustCompile(`(?i)I would recommend (?:searching|looking|checking)`),
}

var (
	quotedText = regexp.MustCompile(`["']([^"']+)["']`)

	// Used by ExtractSearchQuery to decide whether a business query needs
	// the "hours location" suffix appended.
	hoursKeyword     = regexp.MustCompile(`(?i)\b(?:hours|open|opening|closing)\b`)
	businessCategory = regexp.MustCompile(`(?i)\b(?:restaurant|cafe|store|shop|hotel|bank|gym)\b`)

	// Phrase-stripping patterns, tried in order. The first capture group
	// that matches becomes the search query.
	extractPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)search (?:for |the web for |online for )?(.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)look up (.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)find (?:information|info) (?:on|about) (.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)what'?s (?:the latest|happening|new) (?:on|about|with) (.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)web search (?:for )?(.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)(?:hours|location|address) (?:for|of|at) (.+?)(?:\?|$)`),
		regexp.MustCompile(`(?i)(?:when|what time) (?:does|do|is) (.+?) (?:open|close)(?:\?|$)`),
	}

	trailingQuestion = regexp.MustCompile(`\?$`)
)

// IsBusinessQuery reports whether the message asks about a business
// (hours, location, contact details, category nouns).
func IsBusinessQuery(message string) bool {
	return anyMatch(businessPatterns, message)
}

// ShouldPerformWebSearch reports whether the message warrants augmenting
// the model's context with live search results. Business queries always
// qualify; otherwise explicit search requests, recency language and
// real-time-data questions do.
func ShouldPerformWebSearch(message string) bool {
	if IsBusinessQuery(message) {
		return true
	}
	return anyMatch(searchPatterns, message)
}

// IsUncertainResponse reports whether a model reply hedges in a way that
// suggests a follow-up search would help. Empty input is never uncertain.
func IsUncertainResponse(response string) bool {
	if response == "" {
		return false
	}
	return anyMatch(uncertaintyPatterns, response)
}

// ExtractSearchQuery derives the query string to send to the search
// backend. Precedence: quoted text wins outright, business queries without
// an hours keyword get an "hours location" suffix, then the
// phrase-stripping patterns fire in fixed order, and finally the whole
// message is used with a single trailing "?" removed.
func ExtractSearchQuery(message string) string {
	if m := quotedText.FindStringSubmatch(message); m != nil {
		return m[1]
	}

	if IsBusinessQuery(message) {
		if !hoursKeyword.MatchString(message) && businessCategory.MatchString(message) {
			return strings.TrimSpace(message) + " hours location"
		}
	}

	for _, pattern := range extractPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return strings.TrimSpace(trailingQuestion.ReplaceAllString(message, ""))
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}
