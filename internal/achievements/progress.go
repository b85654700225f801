package achievements

import (
	"fmt"
	"time"
)

// ContentCounts are the per-user totals owned by the story storage layer.
type ContentCounts struct {
	Memories             int `db:"memories" json:"memories"`
	ChaptersCompleted    int `db:"chapters_completed" json:"chapters_completed"`
	CollectionsCompleted int `db:"collections_completed" json:"collections_completed"`
	People               int `db:"people" json:"people"`
	Places               int `db:"places" json:"places"`
	Decades              int `db:"decades" json:"decades"`
}

// Snapshot is a point-in-time read of every metric an achievement can key on.
// It is recomputed from storage on demand and never persisted.
type Snapshot struct {
	Counts ContentCounts `json:"counts"`
	Streak StreakState   `json:"streak"`
}

// Metric returns the snapshot value an achievement type is compared against.
func (s Snapshot) Metric(typ string) (int, bool) {
	switch typ {
	case TypeMilestone:
		return s.Counts.Memories, true
	case TypeStreak:
		return s.Streak.Current, true
	case TypeChapter:
		return s.Counts.ChaptersCompleted, true
	case TypeCollection:
		return s.Counts.CollectionsCompleted, true
	case TypePeople:
		return s.Counts.People, true
	case TypePlaces:
		return s.Counts.Places, true
	case TypeTime:
		return s.Counts.Decades, true
	default:
		return 0, false
	}
}

// Store is the storage collaborator the engine reads progress through and
// writes unlocks through. The conditional insert carries the exactly-once
// guarantee, typically via a (user_id, achievement_key) unique constraint.
type Store interface {
	ActivityDates(userID int) ([]time.Time, error)
	ContentCounts(userID int) (ContentCounts, error)
	ExistingUnlocks(userID int) (map[string]bool, error)
	InsertUnlockIfAbsent(userID int, achievementKey string) (bool, error)
}

// Aggregator assembles progress snapshots from the storage collaborator.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Snapshot reads the user's content counts and activity history and derives
// the streak. The caller must invoke it only after the triggering
// contribution has committed, so the snapshot reflects that write.
func (a *Aggregator) Snapshot(userID int, today time.Time) (Snapshot, error) {
	counts, err := a.store.ContentCounts(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read content counts: %w", err)
	}
	if err := counts.validate(); err != nil {
		return Snapshot{}, err
	}

	dates, err := a.store.ActivityDates(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read activity dates: %w", err)
	}

	streak, err := ComputeStreak(dates, today)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Counts: counts, Streak: streak}, nil
}

func (c ContentCounts) validate() error {
	for _, n := range []int{c.Memories, c.ChaptersCompleted, c.CollectionsCompleted, c.People, c.Places, c.Decades} {
		if n < 0 {
			return fmt.Errorf("negative content count: %w", ErrInvalidSnapshot)
		}
	}
	return nil
}
