package websearch

import (
	"fmt"
	"strings"
)

// NoResultsText is the exact sentinel produced when there is nothing to
// format. The orchestrator and tests depend on this literal.
const NoResultsText = "No search results found."

// FormatResults renders an outcome as a plain-text block for insertion
// into the model prompt. The completion backend consumes this as
// instructional text, so the shape must stay stable: a header naming the
// query, numbered entries with indented URL and snippet lines, and a
// trailing provenance line.
func FormatResults(outcome *Outcome) string {
	if outcome == nil || len(outcome.Results) == 0 {
		return NoResultsText
	}

	var b strings.Builder
	// The query is emitted raw between literal quotes. %q would escape
	// any quote characters inside it and change the shape.
	fmt.Fprintf(&b, "Web Search Results for \"%s\":\n\n", outcome.Query)

	for i, result := range outcome.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, result.Title)
		fmt.Fprintf(&b, "   URL: %s\n", result.URL)
		if result.Content != "" {
			fmt.Fprintf(&b, "   %s\n", result.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSource: %s (%d results in %dms)",
		outcome.Backend, outcome.TotalResults, outcome.SearchTime.Milliseconds())

	return b.String()
}
