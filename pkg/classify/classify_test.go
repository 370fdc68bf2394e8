package classify

import "testing"

func TestIsBusinessQuery(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"hours with proper noun", "What are the hours for Starbucks?", true},
		{"open with proper noun", "Is the Target open Main Street?", true},
		{"is open", "is the bakery open", true},
		{"when does open", "when does the store open", true},
		{"category noun", "recommend a good restaurant downtown", true},
		{"near me category", "any cafes near me in the cafe district", true},
		{"phone number proper noun", "phone number for Walmart", true},
		{"menu proper noun", "menu for Olive Garden", true},
		{"proper noun hours", "Starbucks hours please", true},
		{"business hours literal", "what are your business hours", true},
		{"hours of operation literal", "hours of operation please", true},
		{"css question", "Explain CSS flexbox", false},
		{"empty", "", false},
		{"generic question", "why is the sky blue", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBusinessQuery(tc.message); got != tc.want {
				t.Fatalf("IsBusinessQuery(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestShouldPerformWebSearch(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"explicit search", "search for golang generics", true},
		{"look up", "look up the capital of France", true},
		{"find info", "find information on quantum computing", true},
		{"google verb", "google the best pizza recipe", true},
		{"latest news", "what's the latest news about space", true},
		{"today", "what happened today", true},
		{"weather", "weather in Berlin", true},
		{"game score", "score of the game last night", true},
		{"who won", "who won the election", true},
		{"price of", "price of bitcoin", true},
		{"business query counts", "What are Starbucks hours on Main Street?", true},
		{"css question", "Explain CSS flexbox", false},
		{"code help", "help me refactor this function", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldPerformWebSearch(tc.message); got != tc.want {
				t.Fatalf("ShouldPerformWebSearch(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestIsUncertainResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"empty", "", false},
		{"confident", "Flexbox is a one-dimensional layout model.", false},
		{"no access", "I don't have access to real-time information.", true},
		{"not sure", "I'm not sure about that.", true},
		{"not sure long form", "I am not sure which release that was.", true},
		{"cannot provide", "I cannot provide current stock prices.", true},
		{"training cutoff", "My training data cuts off before that date.", true},
		{"knowledge cutoff", "My knowledge is limited to older events.", true},
		{"as an ai", "As an AI language model, I don't have live data.", true},
		{"apologize", "I apologize, but I don't know the answer.", true},
		{"without current", "Without current information I can only guess.", true},
		{"recommend searching", "I would recommend searching online for that.", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUncertainResponse(tc.response); got != tc.want {
				t.Fatalf("IsUncertainResponse(%q) = %v, want %v", tc.response, got, tc.want)
			}
		})
	}
}

func TestExtractSearchQuery(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "quoted text wins over phrase stripping",
			message: `search for "exact phrase" please`,
			want:    "exact phrase",
		},
		{
			name:    "single quotes",
			message: "look up 'rust traits' for me",
			want:    "rust traits",
		},
		{
			name:    "business query without hours keyword gets suffix",
			message: "best restaurant in Portland",
			want:    "best restaurant in Portland hours location",
		},
		{
			name:    "business query with hours keyword keeps message",
			message: "What are Joe's Diner hours?",
			want:    "What are Joe's Diner hours",
		},
		{
			name:    "search for",
			message: "search for golang generics?",
			want:    "golang generics",
		},
		{
			name:    "look up",
			message: "look up the FIFA world cup winner",
			want:    "the FIFA world cup winner",
		},
		{
			name:    "find info about",
			message: "find info about the Mars rover?",
			want:    "the Mars rover",
		},
		{
			name:    "when does open",
			message: "when does the Apple Store open?",
			want:    "the Apple Store",
		},
		{
			name:    "fallback strips trailing question mark",
			message: " why is the sky blue?",
			want:    "why is the sky blue",
		},
		{
			name:    "fallback plain message",
			message: "quantum entanglement",
			want:    "quantum entanglement",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractSearchQuery(tc.message); got != tc.want {
				t.Fatalf("ExtractSearchQuery(%q) = %q, want %q", tc.message, got, tc.want)
			}
		})
	}
}

// Classification must be idempotent: same input, same answer, every time.
func TestClassifierIsPure(t *testing.T) {
	messages := []string{
		"What are Starbucks hours on Main Street?",
		"Explain CSS flexbox",
		"search for golang generics",
		"",
	}
	for _, msg := range messages {
		first := IsBusinessQuery(msg)
		second := IsBusinessQuery(msg)
		if first != second {
			t.Fatalf("IsBusinessQuery(%q) changed between calls", msg)
		}
		if ShouldPerformWebSearch(msg) != ShouldPerformWebSearch(msg) {
			t.Fatalf("ShouldPerformWebSearch(%q) changed between calls", msg)
		}
		if ExtractSearchQuery(msg) != ExtractSearchQuery(msg) {
			t.Fatalf("ExtractSearchQuery(%q) changed between calls", msg)
		}
	}
}
