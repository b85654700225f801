package services

import (
	"fmt"
	"time"

	"github.com/memoirly/memoirly-web/internal/achievements"
	"github.com/memoirly/memoirly-web/internal/database"
	"github.com/memoirly/memoirly-web/internal/models"
)

const activityDateLayout = "2006-01-02"

// ProgressService is the storage side of the achievement engine: it reads
// progress metrics and carries unlock records. It implements
// achievements.Store.
type ProgressService struct {
	db *database.DB
}

func NewProgressService(db *database.DB) *ProgressService {
	return &ProgressService{db: db}
}

// ActivityDates returns every calendar day the user contributed on.
func (s *ProgressService) ActivityDates(userID int) ([]time.Time, error) {
	var raw []string
	query := `SELECT activity_date FROM activity_days WHERE user_id = ? ORDER BY activity_date`
	if err := s.db.Select(&raw, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get activity dates: %w", err)
	}

	dates := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := time.ParseInLocation(activityDateLayout, r, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed activity date %q: %w", r, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// RecordActivityDay marks a calendar day as active. Safe to call any number
// of times for the same day.
func (s *ProgressService) RecordActivityDay(userID int, day time.Time) error {
	query := `INSERT OR IGNORE INTO activity_days (user_id, activity_date) VALUES (?, ?)`
	_, err := s.db.Exec(query, userID, day.UTC().Format(activityDateLayout))
	if err != nil {
		return fmt.Errorf("failed to record activity day: %w", err)
	}
	return nil
}

// ContentCounts assembles the per-user totals the evaluator keys on. A
// chapter counts as completed when every one of its prompts has an answer; a
// collection when every one of its chapters is completed.
func (s *ProgressService) ContentCounts(userID int) (achievements.ContentCounts, error) {
	var counts achievements.ContentCounts

	queries := []struct {
		dest  *int
		query string
	}{
		{&counts.Memories, `SELECT COUNT(*) FROM memories WHERE user_id = ?`},
		{&counts.ChaptersCompleted, `
			SELECT COUNT(*) FROM chapters c
			WHERE (SELECT COUNT(DISTINCT m.prompt_index) FROM memories m
			       WHERE m.user_id = ? AND m.chapter_id = c.id) >= c.prompt_count`},
		{&counts.CollectionsCompleted, `
			SELECT COUNT(*) FROM (
				SELECT c.collection FROM chapters c
				GROUP BY c.collection
				HAVING SUM(CASE WHEN (
					SELECT COUNT(DISTINCT m.prompt_index) FROM memories m
					WHERE m.user_id = ? AND m.chapter_id = c.id
				) >= c.prompt_count THEN 0 ELSE 1 END) = 0
			)`},
		{&counts.People, `SELECT COUNT(*) FROM memory_people WHERE user_id = ?`},
		{&counts.Places, `SELECT COUNT(*) FROM memory_places WHERE user_id = ?`},
		{&counts.Decades, `SELECT COUNT(DISTINCT decade) FROM memories WHERE user_id = ? AND decade IS NOT NULL`},
	}

	for _, q := range queries {
		if err := s.db.Get(q.dest, q.query, userID); err != nil {
			return achievements.ContentCounts{}, fmt.Errorf("failed to get content counts: %w", err)
		}
	}

	return counts, nil
}

// ExistingUnlocks returns the user's unlocked achievement keys.
func (s *ProgressService) ExistingUnlocks(userID int) (map[string]bool, error) {
	var keys []string
	query := `SELECT achievement_key FROM achievement_unlocks WHERE user_id = ?`
	if err := s.db.Select(&keys, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get existing unlocks: %w", err)
	}

	unlocked := make(map[string]bool, len(keys))
	for _, k := range keys {
		unlocked[k] = true
	}
	return unlocked, nil
}

// InsertUnlockIfAbsent grants an achievement at most once. The UNIQUE
// constraint on (user_id, achievement_key) decides races: the insert that
// loses is reported as not-inserted, never as an error.
func (s *ProgressService) InsertUnlockIfAbsent(userID int, achievementKey string) (bool, error) {
	query := `INSERT OR IGNORE INTO achievement_unlocks (user_id, achievement_key, unlocked_at) VALUES (?, ?, ?)`
	result, err := s.db.Exec(query, userID, achievementKey, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to insert unlock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read unlock result: %w", err)
	}
	return affected > 0, nil
}

// Unlocks returns the user's unlock records, newest first.
func (s *ProgressService) Unlocks(userID int) ([]models.UnlockRecord, error) {
	var records []models.UnlockRecord
	query := `SELECT user_id, achievement_key, unlocked_at FROM achievement_unlocks WHERE user_id = ? ORDER BY unlocked_at DESC`
	if err := s.db.Select(&records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}
	return records, nil
}
