package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/memoirly/memoirly-web/config"
	"github.com/memoirly/memoirly-web/internal/auth"
	"github.com/memoirly/memoirly-web/internal/llm"
	"github.com/memoirly/memoirly-web/internal/logger"
	"github.com/memoirly/memoirly-web/internal/services"
)

// PromptHandler asks the configured LLM for a follow-up reflection question
// based on the user's recent memories. Falls back to canned prompts when no
// provider is reachable.
type PromptHandler struct {
	cfg     *config.Config
	stories *services.StoryService
	logger  *logger.Log
}

var fallbackPrompts = []llm.PromptSuggestion{
	{Question: "What smells or sounds take you straight back to your childhood home?", Theme: "childhood"},
	{Question: "Tell the story of a meal you will never forget. Who was at the table?", Theme: "family"},
	{Question: "What was the best piece of advice anyone ever gave you, and who gave it?", Theme: "wisdom"},
	{Question: "Describe a place you lived that no longer exists the way you remember it.", Theme: "places"},
	{Question: "What did a typical Sunday look like when you were growing up?", Theme: "routines"},
}

func NewPromptHandler(cfg *config.Config, stories *services.StoryService) *PromptHandler {
	return &PromptHandler{cfg: cfg, stories: stories, logger: logger.New()}
}

// GET /api/v1/prompts/suggestion - Suggest a follow-up reflection question
func (ph *PromptHandler) SuggestPrompt(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	suggestion := ph.generateSuggestion(r.Context(), userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestion)
}

func (ph *PromptHandler) generateSuggestion(ctx context.Context, userID int) llm.PromptSuggestion {
	client, err := llm.NewLLMClient(ph.cfg)
	if err != nil {
		ph.logger.WithError(err).Debug("llm unavailable, using fallback prompt")
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}

	memories, err := ph.stories.ListMemories(userID, 5)
	if err != nil || len(memories) == 0 {
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}

	var recent strings.Builder
	for _, m := range memories {
		fmt.Fprintf(&recent, "- Q: %s\n  A (excerpt): %s\n", m.Question, excerpt(m.Answer, 200))
	}

	prompt := fmt.Sprintf(`You are helping someone write their memoir. Below are their most recent memories.

%s
Suggest ONE warm, specific follow-up question that invites them to go deeper into a detail they mentioned.

You MUST respond in this exact JSON format: {"question": "your question here", "theme": "one-word theme"}
Do NOT include any text before or after the JSON.`, recent.String())

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := client.GenerateResponse(timeoutCtx, prompt)
	if err != nil {
		ph.logger.WithError(err).Warn("could not generate prompt suggestion")
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}

	var suggestion llm.PromptSuggestion
	if err := json.Unmarshal([]byte(resp), &suggestion); err != nil {
		// Try to extract JSON if the model wrapped it in prose
		if extracted, ok := extractSuggestion(resp); ok {
			return extracted
		}
		ph.logger.Warn(fmt.Sprintf("unparseable suggestion response: %s", excerpt(resp, 120)))
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}

	if suggestion.Question == "" {
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}
	return suggestion
}

func extractSuggestion(response string) (llm.PromptSuggestion, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return llm.PromptSuggestion{}, false
	}

	var suggestion llm.PromptSuggestion
	if err := json.Unmarshal([]byte(response[start:end+1]), &suggestion); err != nil || suggestion.Question == "" {
		return llm.PromptSuggestion{}, false
	}
	return suggestion, true
}

// excerpt truncates to at most max bytes without splitting a rune, so
// multi-byte text in an answer stays valid UTF-8 in prompts and logs.
func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func RegisterPromptRoutes(r *mux.Router, cfg *config.Config, stories *services.StoryService) {
	ph := NewPromptHandler(cfg, stories)
	r.HandleFunc("/prompts/suggestion", ph.SuggestPrompt).Methods("GET")
}
