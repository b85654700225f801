package tts

import (
	"context"
	"fmt"

	"github.com/memoirly/memoirly-web/config"
)

// Voice selects a synthesis engine and model for narration playback.
type Voice struct {
	Engine string `json:"engine"`
	Model  string `json:"model"`
}

// Narrator turns memory text into audio for playback in the web client.
type Narrator interface {
	GenerateAudio(ctx context.Context, text string, voice Voice) ([]byte, error)
	Name() string
}

// New creates the configured narration client. Falls back to the dummy
// narrator when narration is disabled.
func New(cfg *config.NarrationConfig) (Narrator, error) {
	if !cfg.Enabled {
		return NewDummyNarrator(), nil
	}

	switch cfg.Type {
	case "google":
		return NewGoogleNarrator(cfg.CredentialsFile)
	case "dummy":
		return NewDummyNarrator(), nil
	default:
		return nil, fmt.Errorf("unsupported narration type: %s", cfg.Type)
	}
}
