package models

import (
	"time"
)

// UnlockRecord is one granted achievement. Rows are created exclusively by
// the unlock evaluator, at most once per (user, achievement_key), and never
// deleted or overwritten.
type UnlockRecord struct {
	UserID         int       `json:"user_id" db:"user_id"`
	AchievementKey string    `json:"achievement_key" db:"achievement_key"`
	UnlockedAt     time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// UserAchievementView joins a catalog definition with the user's unlock
// state, for the progress-display surfaces.
type UserAchievementView struct {
	Key         string     `json:"key"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Threshold   int        `json:"threshold,omitempty"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}
