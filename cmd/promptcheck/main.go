package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/services/classify"
)

// promptcheck classifies a prompt from the command line and prints the
// resulting intent as JSON. Useful for debugging the rule cascade without a
// running server.
func main() {
	lastAction := flag.String("last-action", "", "Simulated lastAction from a previous turn")
	flag.Parse()

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		log.Fatal("usage: promptcheck [-last-action ACTION] <prompt>")
	}

	var convCtx *domain.ConversationContext
	if *lastAction != "" {
		convCtx = &domain.ConversationContext{
			CurrentContext: map[string]any{"lastAction": *lastAction},
		}
	}

	intent := classify.New().Classify(prompt, convCtx)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(intent); err != nil {
		log.Fatalf("encode intent: %v", err)
	}
}
