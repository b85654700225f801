package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/memoirly/memoirly-web/internal/achievements"
	"github.com/memoirly/memoirly-web/internal/auth"
	"github.com/memoirly/memoirly-web/internal/chapters"
	"github.com/memoirly/memoirly-web/internal/logger"
	"github.com/memoirly/memoirly-web/internal/models"
	"github.com/memoirly/memoirly-web/internal/services"
	"github.com/memoirly/memoirly-web/internal/websocket"
)

// MemoryHandler wires the story storage, the achievement engine and the
// celebration push hub behind the HTTP surface.
type MemoryHandler struct {
	library    *chapters.Library
	stories    *services.StoryService
	progress   *services.ProgressService
	catalog    *achievements.Catalog
	aggregator *achievements.Aggregator
	evaluator  *achievements.Evaluator
	hub        *websocket.Hub
	logger     *logger.Log
}

func NewMemoryHandler(library *chapters.Library, stories *services.StoryService, progress *services.ProgressService, catalog *achievements.Catalog, hub *websocket.Hub) *MemoryHandler {
	return &MemoryHandler{
		library:    library,
		stories:    stories,
		progress:   progress,
		catalog:    catalog,
		aggregator: achievements.NewAggregator(progress),
		evaluator:  achievements.NewEvaluator(catalog, progress),
		hub:        hub,
		logger:     logger.New(),
	}
}

// GET /api/v1/chapters - List chapter packs with the user's progress
func (mh *MemoryHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	answered, err := mh.stories.ChapterProgress(userID)
	if err != nil {
		http.Error(w, "Failed to get chapter progress", http.StatusInternalServerError)
		return
	}

	list := []map[string]interface{}{}
	for _, chapter := range mh.library.List() {
		list = append(list, map[string]interface{}{
			"id":          chapter.ID,
			"title":       chapter.Title,
			"collection":  chapter.Collection,
			"description": chapter.Description,
			"prompts":     chapter.Prompts,
			"answered":    answered[chapter.ID],
			"completed":   answered[chapter.ID] >= len(chapter.Prompts),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"chapters": list,
	})
}

// POST /api/v1/memories - Save a memory and run the achievement engine
//
// Control flow: persist the contribution first, then snapshot, then evaluate,
// then build the celebration payload. The snapshot is taken only after the
// save has committed so it reflects this contribution.
func (mh *MemoryHandler) SaveMemory(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	var req models.SaveMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// UTC everywhere: activity days are stored as UTC calendar dates, so
	// the snapshot's "today" has to be on the same calendar.
	now := time.Now().UTC()
	memory, err := mh.stories.SaveMemory(userID, &req, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := mh.aggregator.Snapshot(userID, now)
	if err != nil {
		http.Error(w, "Failed to compute progress: "+err.Error(), http.StatusInternalServerError)
		return
	}

	newlyUnlocked, err := mh.evaluator.Evaluate(userID, snapshot)
	if err != nil {
		// The memory itself is saved; any unlocks that committed before the
		// failure stay valid. The client just doesn't get them celebrated.
		http.Error(w, "Failed to evaluate achievements: "+err.Error(), http.StatusInternalServerError)
		return
	}

	for _, event := range specialEvents(&req) {
		def, err := mh.evaluator.Event(userID, event)
		if err != nil {
			http.Error(w, "Failed to evaluate achievements: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if def != nil {
			newlyUnlocked = append(newlyUnlocked, *def)
		}
	}

	stats := &achievements.ContentStats{
		WordCount:             memory.WordCount,
		TimeToCompleteSeconds: memory.TimeToComplete,
	}
	payload := achievements.BuildCelebration(snapshot, newlyUnlocked, stats)

	if len(newlyUnlocked) > 0 {
		mh.hub.NotifyUser(userID, "achievements_unlocked", payload.NewAchievements)
	}

	mh.logger.Info(fmt.Sprintf("user %d saved memory %s (%d words, streak %d, %d new achievements)",
		userID, memory.ID, memory.WordCount, snapshot.Streak.Current, len(newlyUnlocked)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"memory":      memory,
		"celebration": payload,
	})
}

// specialEvents maps contribution attributes to named achievement events.
func specialEvents(req *models.SaveMemoryRequest) []string {
	var events []string
	if req.HasAudio {
		events = append(events, "first_voice_memory")
	}
	if req.HasPhoto {
		events = append(events, "first_photo_memory")
	}
	return events
}

// GET /api/v1/memories - List saved memories
func (mh *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	memories, err := mh.stories.ListMemories(userID, 50)
	if err != nil {
		http.Error(w, "Failed to list memories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"memories": memories,
	})
}

// GET /api/v1/memories/{id} - Fetch one memory
func (mh *MemoryHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)
	memoryID := mux.Vars(r)["id"]

	memory, err := mh.stories.GetMemory(userID, memoryID)
	if err != nil {
		http.Error(w, "Memory not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(memory)
}

// GET /api/v1/achievements - Catalog joined with the user's unlocks
func (mh *MemoryHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	records, err := mh.progress.Unlocks(userID)
	if err != nil {
		http.Error(w, "Failed to get unlocks", http.StatusInternalServerError)
		return
	}

	unlockedAt := make(map[string]time.Time, len(records))
	for _, rec := range records {
		unlockedAt[rec.AchievementKey] = rec.UnlockedAt
	}

	views := make([]models.UserAchievementView, 0)
	for _, def := range mh.catalog.Definitions() {
		view := models.UserAchievementView{
			Key:         def.Key,
			Type:        def.Type,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Threshold:   def.Threshold,
		}
		if at, ok := unlockedAt[def.Key]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"achievements": views,
	})
}

// GET /api/v1/progress - Current snapshot and streak state
func (mh *MemoryHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromSession(r)

	snapshot, err := mh.aggregator.Snapshot(userID, time.Now().UTC())
	if err != nil {
		http.Error(w, "Failed to compute progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func RegisterRoutes(r *mux.Router, library *chapters.Library, stories *services.StoryService, progress *services.ProgressService, catalog *achievements.Catalog, hub *websocket.Hub) *MemoryHandler {
	mh := NewMemoryHandler(library, stories, progress, catalog, hub)

	r.HandleFunc("/chapters", mh.ListChapters).Methods("GET")
	r.HandleFunc("/memories", mh.SaveMemory).Methods("POST")
	r.HandleFunc("/memories", mh.ListMemories).Methods("GET")
	r.HandleFunc("/memories/{id}", mh.GetMemory).Methods("GET")
	r.HandleFunc("/achievements", mh.ListAchievements).Methods("GET")
	r.HandleFunc("/progress", mh.GetProgress).Methods("GET")

	return mh
}

func GetUserProfile(userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.GetUserIDFromSession(r)

		user, err := userService.GetUserByID(userID)
		if err != nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func UpdateUserProfile(userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.GetUserIDFromSession(r)

		var req models.ProfileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := userService.UpdateProfile(userID, req.DisplayName, req.Email); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func ChangePassword(userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.GetUserIDFromSession(r)

		var req models.PasswordChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
