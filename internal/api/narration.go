package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/memoirly/memoirly-web/config"
	"github.com/memoirly/memoirly-web/internal/auth"
	"github.com/memoirly/memoirly-web/internal/services"
	"github.com/memoirly/memoirly-web/internal/tts"
)

// NarrationHandler streams synthesized audio for saved memories.
type NarrationHandler struct {
	narrator tts.Narrator
	voice    tts.Voice
	stories  *services.StoryService
}

func NewNarrationHandler(cfg *config.NarrationConfig, stories *services.StoryService) (*NarrationHandler, error) {
	narrator, err := tts.New(cfg)
	if err != nil {
		return nil, err
	}

	return &NarrationHandler{
		narrator: narrator,
		voice:    tts.Voice{Engine: cfg.Type, Model: cfg.Voice},
		stories:  stories,
	}, nil
}

// GET /api/v1/memories/{id}/narration - Narrate a saved memory as MP3
func (nh *NarrationHandler) NarrateMemory(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)
	memoryID := mux.Vars(r)["id"]

	memory, err := nh.stories.GetMemory(userID, memoryID)
	if err != nil {
		http.Error(w, "Memory not found", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	audioData, err := nh.narrator.GenerateAudio(ctx, memory.Answer, nh.voice)
	if err != nil {
		http.Error(w, "Failed to generate narration: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")

	if _, err := w.Write(audioData); err != nil {
		http.Error(w, "Failed to stream audio", http.StatusInternalServerError)
		return
	}
}

func RegisterNarrationRoutes(r *mux.Router, cfg *config.NarrationConfig, stories *services.StoryService) {
	narrationHandler, err := NewNarrationHandler(cfg, stories)
	if err != nil {
		// If narration setup fails, skip these routes. The app runs fine
		// without audio when Google credentials aren't configured.
		return
	}

	r.HandleFunc("/memories/{id}/narration", narrationHandler.NarrateMemory).Methods("GET")
}
