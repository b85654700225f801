package achievements

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCelebrationPayloadShape(t *testing.T) {
	snap := Snapshot{Streak: StreakState{Current: 5, IsNewRecord: true}}
	unlocked := []Definition{
		{Key: "memories_10", Name: "Storyteller", Description: "Save 10 memories"},
	}
	stats := &ContentStats{WordCount: 412, TimeToCompleteSeconds: 185}

	payload := BuildCelebration(snap, unlocked, stats)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	streak := decoded["streak"].(map[string]interface{})
	assert.EqualValues(t, 5, streak["current"])
	assert.Equal(t, true, streak["isNewRecord"])

	// Raw seconds on the wire; the client divides by 60 for display.
	statsOut := decoded["stats"].(map[string]interface{})
	assert.EqualValues(t, 185, statsOut["timeToComplete"])
	assert.EqualValues(t, 412, statsOut["wordCount"])

	achievementsOut := decoded["newAchievements"].([]interface{})
	require.Len(t, achievementsOut, 1)
	first := achievementsOut[0].(map[string]interface{})
	assert.Equal(t, "Storyteller", first["achievement_name"])
	assert.Equal(t, "Save 10 memories", first["achievement_description"])

	celebration := decoded["celebration"].(map[string]interface{})
	assert.NotEmpty(t, celebration["message"])
}

func TestBuildCelebrationOmitsStatsWhenAbsent(t *testing.T) {
	payload := BuildCelebration(Snapshot{}, nil, nil)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, present := decoded["stats"]
	assert.False(t, present)
}

func TestBuildCelebrationEmptyAchievementsIsEmptyArray(t *testing.T) {
	payload := BuildCelebration(Snapshot{}, nil, nil)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"newAchievements":[]`)
}

func TestCelebrationMessageSelection(t *testing.T) {
	oneUnlock := []Definition{{Name: "Storyteller"}}
	manyUnlocks := []Definition{{Name: "a"}, {Name: "b"}}

	assert.Contains(t, BuildCelebration(Snapshot{}, oneUnlock, nil).Celebration.Message, "Storyteller")
	assert.Contains(t, BuildCelebration(Snapshot{}, manyUnlocks, nil).Celebration.Message, "2 achievements")

	record := Snapshot{Streak: StreakState{Current: 4, IsNewRecord: true}}
	assert.Contains(t, BuildCelebration(record, nil, nil).Celebration.Message, "record")

	plain := Snapshot{Streak: StreakState{Current: 4}}
	assert.Contains(t, BuildCelebration(plain, nil, nil).Celebration.Message, "streak")

	assert.NotEmpty(t, BuildCelebration(Snapshot{}, nil, nil).Celebration.Message)
}
