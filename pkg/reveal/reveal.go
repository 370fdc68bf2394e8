// Package reveal implements the terminal typewriter effect: a final,
// immutable string revealed in timed chunks, with cancellation that
// immediately flushes whatever remains. Presentation only; nothing in
// the turn pipeline depends on it.
package reveal

import (
	"context"
	"time"
)

// DefaultInterval is the pause between chunks.
const DefaultInterval = 15 * time.Millisecond

// DefaultChunkSize is how many runes each tick reveals.
const DefaultChunkSize = 3

// Stream reveals text on the returned channel in chunks of chunkSize
// runes every interval. Cancelling ctx (skip-to-end) delivers the entire
// unrevealed remainder as one final chunk. The channel is closed once
// the full text has been sent; concatenating everything received always
// reproduces text exactly. The caller must drain the channel, including
// after cancellation.
func Stream(ctx context.Context, text string, interval time.Duration, chunkSize int) <-chan string {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	out := make(chan string)
	go func() {
		defer close(out)
		runes := []rune(text)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for pos := 0; pos < len(runes); {
			end := pos + chunkSize
			if end > len(runes) {
				end = len(runes)
			}
			select {
			case <-ctx.Done():
				out <- string(runes[pos:])
				return
			case out <- string(runes[pos:end]):
				pos = end
			}
			if pos < len(runes) {
				select {
				case <-ctx.Done():
					out <- string(runes[pos:])
					return
				case <-ticker.C:
				}
			}
		}
	}()
	return out
}
