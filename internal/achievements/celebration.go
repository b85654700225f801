package achievements

import "fmt"

// ContentStats describe the specific contribution just saved, supplied by the
// story storage collaborator.
type ContentStats struct {
	WordCount             int `json:"wordCount"`
	TimeToCompleteSeconds int `json:"timeToCompleteSeconds"`
}

// CelebrationPayload is the response contract consumed by the celebration UI.
// Field names are fixed; timeToComplete is raw seconds, the client divides
// for display.
type CelebrationPayload struct {
	Streak          CelebrationStreak        `json:"streak"`
	Stats           *CelebrationStats        `json:"stats,omitempty"`
	NewAchievements []CelebrationAchievement `json:"newAchievements"`
	Celebration     CelebrationMessage       `json:"celebration"`
}

type CelebrationStreak struct {
	Current     int  `json:"current"`
	IsNewRecord bool `json:"isNewRecord"`
}

type CelebrationStats struct {
	WordCount      int `json:"wordCount"`
	TimeToComplete int `json:"timeToComplete"`
}

type CelebrationAchievement struct {
	Name        string `json:"achievement_name"`
	Description string `json:"achievement_description"`
}

type CelebrationMessage struct {
	Message string `json:"message"`
}

// BuildCelebration assembles the payload for one saved contribution. Pure
// assembly: no storage access, no side effects.
func BuildCelebration(snap Snapshot, newlyUnlocked []Definition, stats *ContentStats) CelebrationPayload {
	payload := CelebrationPayload{
		Streak: CelebrationStreak{
			Current:     snap.Streak.Current,
			IsNewRecord: snap.Streak.IsNewRecord,
		},
		NewAchievements: make([]CelebrationAchievement, 0, len(newlyUnlocked)),
	}

	for _, def := range newlyUnlocked {
		payload.NewAchievements = append(payload.NewAchievements, CelebrationAchievement{
			Name:        def.Name,
			Description: def.Description,
		})
	}

	if stats != nil {
		payload.Stats = &CelebrationStats{
			WordCount:      stats.WordCount,
			TimeToComplete: stats.TimeToCompleteSeconds,
		}
	}

	payload.Celebration.Message = celebrationMessage(snap, newlyUnlocked)
	return payload
}

func celebrationMessage(snap Snapshot, newlyUnlocked []Definition) string {
	switch {
	case len(newlyUnlocked) == 1:
		return fmt.Sprintf("Achievement unlocked: %s!", newlyUnlocked[0].Name)
	case len(newlyUnlocked) > 1:
		return fmt.Sprintf("%d achievements unlocked!", len(newlyUnlocked))
	case snap.Streak.IsNewRecord && snap.Streak.Current > 1:
		return fmt.Sprintf("New record: %d days in a row!", snap.Streak.Current)
	case snap.Streak.Current > 1:
		return fmt.Sprintf("You're on a %d-day writing streak. Keep going!", snap.Streak.Current)
	default:
		return "Another memory saved. Your story is growing."
	}
}
