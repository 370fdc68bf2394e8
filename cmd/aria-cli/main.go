// Command aria-cli is a terminal client for a running aria server. It
// keeps the conversation history for the session and reveals replies
// with a typewriter effect; Ctrl+C during a reveal skips to the end.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/aria-chat/aria/pkg/completion"
	"github.com/aria-chat/aria/pkg/httpapi"
	"github.com/aria-chat/aria/pkg/reveal"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "aria server base URL")
	noSearch := flag.Bool("no-search", false, "disable web search augmentation")
	flag.Parse()

	fmt.Println("Aria chat. Type a message, or /quit to exit.")

	var history []completion.Message
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "/quit" || message == "/exit" {
			return
		}

		resp, err := sendTurn(*server, message, history, !*noSearch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		printReply(resp.Message)
		if resp.Search != nil {
			fmt.Printf("\n[searched %q via %s, %d results, trigger: %s]\n",
				resp.Search.Query, resp.Search.Backend, resp.Search.ResultCount, resp.Search.Trigger)
		}
		fmt.Println()

		history = append(history,
			completion.Message{Role: completion.RoleUser, Content: message},
			completion.Message{Role: completion.RoleAssistant, Content: resp.Message},
		)
	}
}

func sendTurn(server, message string, history []completion.Message, enableSearch bool) (*httpapi.ChatResponse, error) {
	payload, err := json.Marshal(httpapi.ChatRequest{
		Message:      message,
		History:      history,
		EnableSearch: &enableSearch,
	})
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Post(server+"/api/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr httpapi.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s: %s", apiErr.Error, apiErr.Details)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var chatResp httpapi.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}

func printReply(text string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	for chunk := range reveal.Stream(ctx, text, reveal.DefaultInterval, reveal.DefaultChunkSize) {
		fmt.Print(chunk)
	}
	fmt.Println()
}
