package llm

import (
	"context"
)

// PromptSuggestion is a follow-up reflection question proposed to the writer.
type PromptSuggestion struct {
	Question string `json:"question"`
	Theme    string `json:"theme"`
}

// LLM defines the interface for language model providers
type LLM interface {

	// GenerateResponse generates a response from the LLM given a prompt
	GenerateResponse(ctx context.Context, prompt string) (string, error)

	// IsModelAvailable checks if the configured model is available
	IsModelAvailable(ctx context.Context) error
}
