package achievements

import (
	"fmt"
	"sort"
	"time"
)

// StreakState is derived from a user's activity-day history. It has no write
// path of its own: same dates in, same state out.
type StreakState struct {
	Current      int        `json:"current_streak"`
	Longest      int        `json:"longest_streak"`
	LastActivity *time.Time `json:"last_activity_date,omitempty"`
	IsNewRecord  bool       `json:"is_new_record"`
}

// ComputeStreak derives the streak state from a set of activity dates and a
// caller-supplied "today" (the engine never reads the wall clock itself).
// Duplicate timestamps on the same calendar day collapse to one activity day.
// A streak is alive only if the most recent activity day is today or
// yesterday; anything older means the current streak is 0 no matter how long
// the last run was. IsNewRecord is true only when today itself has activity
// and the run ending today beats every run in the prior history.
func ComputeStreak(dates []time.Time, today time.Time) (StreakState, error) {
	if today.IsZero() {
		return StreakState{}, fmt.Errorf("today is unset: %w", ErrInvalidSnapshot)
	}

	day := midnightUTC(today)
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			return StreakState{}, fmt.Errorf("zero activity date: %w", ErrInvalidSnapshot)
		}
		n := midnightUTC(d)
		if n.After(day) {
			return StreakState{}, fmt.Errorf("activity date %s is in the future: %w", n.Format("2006-01-02"), ErrInvalidSnapshot)
		}
		if !seen[n] {
			seen[n] = true
			days = append(days, n)
		}
	}

	if len(days) == 0 {
		return StreakState{}, nil
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	last := days[len(days)-1]
	state := StreakState{LastActivity: &last}

	// Longest run over the whole history, and separately over the history
	// without today, which is the record the current run has to beat.
	run := 1
	longestBefore := 0
	for i := 0; i < len(days); i++ {
		if i > 0 {
			if daysBetween(days[i-1], days[i]) == 1 {
				run++
			} else {
				run = 1
			}
		}
		if run > state.Longest {
			state.Longest = run
		}
		if !days[i].Equal(day) && run > longestBefore {
			longestBefore = run
		}
	}

	// Current streak: the maximal run ending at today or yesterday.
	if gap := daysBetween(last, day); gap <= 1 {
		state.Current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if daysBetween(days[i], days[i+1]) != 1 {
				break
			}
			state.Current++
		}
	}

	state.IsNewRecord = seen[day] && state.Current > longestBefore
	return state, nil
}

// midnightUTC truncates to the UTC calendar day, regardless of the
// location the timestamp arrives in. Storage records activity days in
// UTC, so the streak must count days on the same calendar.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
