package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/closestmatch"

	"github.com/memoirly/memoirly-web/internal/chapters"
	"github.com/memoirly/memoirly-web/internal/database"
	"github.com/memoirly/memoirly-web/internal/models"
)

// StoryService owns the memoir content: memories, people, places, and the
// seeded chapter table. It is the "story storage collaborator" the
// achievement engine reads through.
type StoryService struct {
	db       *database.DB
	library  *chapters.Library
	progress *ProgressService
}

func NewStoryService(db *database.DB, library *chapters.Library, progress *ProgressService) *StoryService {
	return &StoryService{db: db, library: library, progress: progress}
}

// SeedChapters mirrors the loaded chapter packs into the chapters table so
// completion counts can be computed in SQL.
func (s *StoryService) SeedChapters() error {
	for _, chapter := range s.library.List() {
		query := `
			INSERT INTO chapters (id, collection, title, prompt_count)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				collection = excluded.collection,
				title = excluded.title,
				prompt_count = excluded.prompt_count
		`
		if _, err := s.db.Exec(query, chapter.ID, chapter.Collection, chapter.Title, len(chapter.Prompts)); err != nil {
			return fmt.Errorf("failed to seed chapter %s: %w", chapter.ID, err)
		}
	}
	return nil
}

// SaveMemory persists one answered prompt and its side records: the
// idempotent activity day, and any newly mentioned people and places. It
// must commit before the caller asks the engine for a snapshot.
func (s *StoryService) SaveMemory(userID int, req *models.SaveMemoryRequest, savedAt time.Time) (*models.Memory, error) {
	chapter, ok := s.library.Get(req.ChapterID)
	if !ok {
		return nil, fmt.Errorf("chapter not found: %s", req.ChapterID)
	}
	if req.PromptIndex < 0 || req.PromptIndex >= len(chapter.Prompts) {
		return nil, fmt.Errorf("prompt index %d out of range for chapter %s", req.PromptIndex, req.ChapterID)
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("answer cannot be empty")
	}

	memory := &models.Memory{
		ID:             uuid.NewString(),
		UserID:         userID,
		ChapterID:      req.ChapterID,
		PromptIndex:    req.PromptIndex,
		Question:       req.Question,
		Answer:         req.Answer,
		WordCount:      len(strings.Fields(req.Answer)),
		TimeToComplete: req.TimeToCompleteSeconds,
		Decade:         req.Decade,
		HasAudio:       req.HasAudio,
		HasPhoto:       req.HasPhoto,
		CreatedAt:      savedAt,
	}

	query := `
		INSERT INTO memories (id, user_id, chapter_id, prompt_index, question, answer,
			word_count, time_to_complete, decade, has_audio, has_photo, created_at)
		VALUES (:id, :user_id, :chapter_id, :prompt_index, :question, :answer,
			:word_count, :time_to_complete, :decade, :has_audio, :has_photo, :created_at)
	`
	if _, err := s.db.NamedExec(query, memory); err != nil {
		return nil, fmt.Errorf("failed to save memory: %w", err)
	}

	if err := s.progress.RecordActivityDay(userID, savedAt); err != nil {
		return nil, err
	}

	if err := s.recordNames(userID, "memory_people", req.People); err != nil {
		return nil, err
	}
	if err := s.recordNames(userID, "memory_places", req.Places); err != nil {
		return nil, err
	}

	return memory, nil
}

// recordNames inserts mentioned names after collapsing near-duplicates
// against the user's existing entries ("Grandma Rose" and "grandma rose"
// should count as one person).
func (s *StoryService) recordNames(userID int, table string, names []string) error {
	if len(names) == 0 {
		return nil
	}

	var existing []string
	query := fmt.Sprintf(`SELECT name FROM %s WHERE user_id = ?`, table)
	if err := s.db.Select(&existing, query, userID); err != nil {
		return fmt.Errorf("failed to read existing names: %w", err)
	}

	insert := fmt.Sprintf(`INSERT OR IGNORE INTO %s (user_id, name) VALUES (?, ?)`, table)
	for _, name := range names {
		canonical := canonicalName(existing, name)
		if canonical == "" {
			continue
		}
		if _, err := s.db.Exec(insert, userID, canonical); err != nil {
			return fmt.Errorf("failed to record name %q: %w", canonical, err)
		}
		existing = append(existing, canonical)
	}
	return nil
}

// canonicalName resolves a typed name to an existing spelling when one is
// close enough, otherwise returns the cleaned-up new name.
func canonicalName(existing []string, name string) string {
	clean := strings.Join(strings.Fields(name), " ")
	if clean == "" {
		return ""
	}

	for _, e := range existing {
		if strings.EqualFold(e, clean) {
			return e
		}
	}

	if len(existing) > 0 {
		cm := closestmatch.New(existing, []int{2})
		best := cm.Closest(clean)
		if best != "" && containsFold(best, clean) {
			return best
		}
	}

	return clean
}

func containsFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// GetMemory returns one memory owned by the user.
func (s *StoryService) GetMemory(userID int, memoryID string) (*models.Memory, error) {
	var memory models.Memory
	query := `SELECT * FROM memories WHERE id = ? AND user_id = ?`
	if err := s.db.Get(&memory, query, memoryID, userID); err != nil {
		return nil, fmt.Errorf("memory not found: %w", err)
	}
	return &memory, nil
}

// ListMemories returns the user's memories, newest first.
func (s *StoryService) ListMemories(userID int, limit int) ([]models.Memory, error) {
	if limit <= 0 {
		limit = 50
	}

	var memories []models.Memory
	query := `SELECT * FROM memories WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	if err := s.db.Select(&memories, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	return memories, nil
}

// ChapterProgress reports answered-prompt counts per chapter for the user.
func (s *StoryService) ChapterProgress(userID int) (map[string]int, error) {
	rows := []struct {
		ChapterID string `db:"chapter_id"`
		Answered  int    `db:"answered"`
	}{}

	query := `
		SELECT chapter_id, COUNT(DISTINCT prompt_index) as answered
		FROM memories WHERE user_id = ?
		GROUP BY chapter_id
	`
	if err := s.db.Select(&rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get chapter progress: %w", err)
	}

	progress := make(map[string]int, len(rows))
	for _, r := range rows {
		progress[r.ChapterID] = r.Answered
	}
	return progress, nil
}
