package achievements

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with the same conditional-insert semantics
// as the real one: the first insert for a key wins, later ones are no-ops.
type fakeStore struct {
	mu          sync.Mutex
	dates       []time.Time
	counts      ContentCounts
	unlocks     map[string]bool
	insertErr   error
	readErr     error
	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{unlocks: make(map[string]bool)}
}

func (f *fakeStore) ActivityDates(userID int) ([]time.Time, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.dates, nil
}

func (f *fakeStore) ContentCounts(userID int) (ContentCounts, error) {
	if f.readErr != nil {
		return ContentCounts{}, f.readErr
	}
	return f.counts, nil
}

func (f *fakeStore) ExistingUnlocks(userID int) (map[string]bool, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.unlocks))
	for k, v := range f.unlocks {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) InsertUnlockIfAbsent(userID int, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if f.unlocks[key] {
		return false, nil
	}
	f.unlocks[key] = true
	return true, nil
}

func keysOf(defs []Definition) []string {
	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	return keys
}

func newTestEvaluator(t *testing.T, store Store) *Evaluator {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewEvaluator(catalog, store)
}

func TestEvaluateBatchesAllCrossedThresholds(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	snap := Snapshot{Counts: ContentCounts{Memories: 30}}
	unlocked, err := ev.Evaluate(1, snap)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"memories_1", "memories_10", "memories_25"}, keysOf(unlocked))
	assert.NotContains(t, keysOf(unlocked), "memories_50")
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	store := newFakeStore()
	store.unlocks["streak_3"] = true
	ev := newTestEvaluator(t, store)

	snap := Snapshot{Streak: StreakState{Current: 7}}
	unlocked, err := ev.Evaluate(1, snap)
	require.NoError(t, err)

	assert.Equal(t, []string{"streak_7"}, keysOf(unlocked))
}

func TestEvaluateIdempotent(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	snap := Snapshot{Counts: ContentCounts{Memories: 10}, Streak: StreakState{Current: 3}}

	first, err := ev.Evaluate(1, snap)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := ev.Evaluate(1, snap)
	require.NoError(t, err)
	assert.Empty(t, second, "an unchanged snapshot must not re-report unlocks")
}

func TestEvaluateExactlyOnceUnderConcurrency(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	snap := Snapshot{Counts: ContentCounts{Memories: 25}, Streak: StreakState{Current: 3}}

	var wg sync.WaitGroup
	results := make([][]Definition, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unlocked, err := ev.Evaluate(1, snap)
			if !assert.NoError(t, err) {
				return
			}
			results[i] = unlocked
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int)
	for _, r := range results {
		for _, key := range keysOf(r) {
			seen[key]++
		}
	}
	assert.ElementsMatch(t, []string{"memories_1", "memories_10", "memories_25", "streak_3"}, mapKeys(seen))
	for key, n := range seen {
		assert.Equal(t, 1, n, "achievement %s reported as newly unlocked %d times", key, n)
	}
}

func mapKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestEvaluateFailsWholeCallOnStorageError(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("database is locked")
	ev := newTestEvaluator(t, store)

	unlocked, err := ev.Evaluate(1, Snapshot{Counts: ContentCounts{Memories: 10}})
	assert.Error(t, err)
	assert.Nil(t, unlocked, "no partial unlock set may be reported as complete")
}

func TestEvaluateRejectsNegativeCounts(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	_, err := ev.Evaluate(1, Snapshot{Counts: ContentCounts{Memories: -1}})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Zero(t, store.insertCalls)
}

func TestEventUnlocksSpecialOnce(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	def, err := ev.Event(1, "first_voice_memory")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "first_voice_memory", def.Key)

	again, err := ev.Event(1, "first_voice_memory")
	require.NoError(t, err)
	assert.Nil(t, again, "special achievements unlock at most once")
}

func TestEventIgnoresUnknownEvents(t *testing.T) {
	store := newFakeStore()
	ev := newTestEvaluator(t, store)

	def, err := ev.Event(1, "exported_pdf")
	require.NoError(t, err)
	assert.Nil(t, def)
	assert.Zero(t, store.insertCalls)
}

func TestAggregatorSnapshot(t *testing.T) {
	store := newFakeStore()
	store.counts = ContentCounts{Memories: 12, People: 4, Decades: 2}
	store.dates = days("2026-01-01", "2026-01-02", "2026-01-03")

	agg := NewAggregator(store)
	snap, err := agg.Snapshot(1, day("2026-01-03"))
	require.NoError(t, err)

	assert.Equal(t, 12, snap.Counts.Memories)
	assert.Equal(t, 3, snap.Streak.Current)
	assert.True(t, snap.Streak.IsNewRecord)
}

func TestAggregatorRejectsNegativeCounts(t *testing.T) {
	store := newFakeStore()
	store.counts = ContentCounts{Places: -2}

	agg := NewAggregator(store)
	_, err := agg.Snapshot(1, day("2026-01-03"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestAggregatorPropagatesStorageErrors(t *testing.T) {
	store := newFakeStore()
	store.readErr = errors.New("connection refused")

	agg := NewAggregator(store)
	_, err := agg.Snapshot(1, day("2026-01-03"))
	assert.Error(t, err)
}
