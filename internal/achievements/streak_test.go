package achievements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(ss ...string) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		out[i] = day(s)
	}
	return out
}

func TestComputeStreakEmptyHistory(t *testing.T) {
	state, err := ComputeStreak(nil, day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, 0, state.Longest)
	assert.False(t, state.IsNewRecord)
	assert.Nil(t, state.LastActivity)
}

func TestComputeStreakSingleDayToday(t *testing.T) {
	state, err := ComputeStreak(days("2026-01-03"), day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, state.Current)
	assert.Equal(t, 1, state.Longest)
	assert.True(t, state.IsNewRecord, "the first ever activity day is a record")
}

func TestComputeStreakThreeConsecutiveDays(t *testing.T) {
	state, err := ComputeStreak(days("2026-01-01", "2026-01-02", "2026-01-03"), day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 3, state.Current)
	assert.Equal(t, 3, state.Longest)
	assert.True(t, state.IsNewRecord)
}

func TestComputeStreakGapResetsCurrent(t *testing.T) {
	state, err := ComputeStreak(days("2026-01-01", "2026-01-03"), day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, state.Current)
	assert.Equal(t, 1, state.Longest)
}

func TestComputeStreakBrokenWhenLastActivityTooOld(t *testing.T) {
	// A long run that ended three days ago is worth nothing today.
	state, err := ComputeStreak(days("2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04"), day("2026-01-07"))
	require.NoError(t, err)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, 4, state.Longest)
	assert.False(t, state.IsNewRecord)
}

func TestComputeStreakYesterdayKeepsStreakAlive(t *testing.T) {
	state, err := ComputeStreak(days("2026-01-01", "2026-01-02"), day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 2, state.Current)
	assert.False(t, state.IsNewRecord, "no record without activity today")
}

func TestComputeStreakDeduplicatesSameDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 1, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 21, 30, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	state, err := ComputeStreak(dates, day("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 2, state.Current)
	assert.Equal(t, 2, state.Longest)
}

func TestComputeStreakNotARecordWhenTyingOldRun(t *testing.T) {
	// Old 3-day run, new 2-day run ending today: current < longest-before.
	state, err := ComputeStreak(
		days("2026-01-01", "2026-01-02", "2026-01-03", "2026-01-06", "2026-01-07"),
		day("2026-01-07"))
	require.NoError(t, err)
	assert.Equal(t, 2, state.Current)
	assert.Equal(t, 3, state.Longest)
	assert.False(t, state.IsNewRecord)
}

func TestComputeStreakRecordWhenBeatingOldRun(t *testing.T) {
	state, err := ComputeStreak(
		days("2026-01-01", "2026-01-02", "2026-01-05", "2026-01-06", "2026-01-07"),
		day("2026-01-07"))
	require.NoError(t, err)
	assert.Equal(t, 3, state.Current)
	assert.Equal(t, 3, state.Longest)
	assert.True(t, state.IsNewRecord)
}

func TestComputeStreakLongestNeverBelowCurrent(t *testing.T) {
	cases := [][]string{
		{"2026-01-03"},
		{"2026-01-02", "2026-01-03"},
		{"2026-01-01", "2026-01-03"},
		{"2025-12-25", "2025-12-26", "2026-01-02", "2026-01-03"},
	}
	for _, c := range cases {
		state, err := ComputeStreak(days(c...), day("2026-01-03"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.Longest, state.Current, "dates: %v", c)
	}
}

func TestComputeStreakCountsUTCCalendarDays(t *testing.T) {
	// A clock in a western timezone late in the UTC day: the local date is
	// still Jan 2, but the UTC date (the one storage records) is Jan 3.
	local := time.Date(2026, 1, 3, 1, 0, 0, 0, time.UTC).In(time.FixedZone("EST", -5*3600))

	state, err := ComputeStreak(days("2026-01-02", "2026-01-03"), local)
	require.NoError(t, err, "a same-instant activity day must not read as the future")
	assert.Equal(t, 2, state.Current)
	assert.True(t, state.IsNewRecord)
}

func TestComputeStreakRejectsMalformedInput(t *testing.T) {
	_, err := ComputeStreak(days("2026-01-03"), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = ComputeStreak([]time.Time{{}}, day("2026-01-03"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = ComputeStreak(days("2026-01-05"), day("2026-01-03"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot, "future activity dates are rejected")
}
