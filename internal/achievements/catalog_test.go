package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, catalog.Definitions())
}

func TestCatalogByTypeAscendingThresholds(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	for _, typ := range []string{TypeStreak, TypeMilestone, TypeChapter, TypeCollection, TypePeople, TypePlaces, TypeTime} {
		group := catalog.ByType(typ)
		require.NotEmpty(t, group, "type %s has no definitions", typ)
		for i := 1; i < len(group); i++ {
			assert.Greater(t, group[i].Threshold, group[i-1].Threshold,
				"type %s not strictly ascending at %s", typ, group[i].Key)
		}
	}
}

func TestCatalogGet(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	def, err := catalog.Get("streak_7")
	require.NoError(t, err)
	assert.Equal(t, TypeStreak, def.Type)
	assert.Equal(t, 7, def.Threshold)

	_, err = catalog.Get("no_such_achievement")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewCatalogRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{
			name: "duplicate key",
			defs: []Definition{
				{Key: "a", Type: TypeStreak, Threshold: 3},
				{Key: "a", Type: TypeStreak, Threshold: 7},
			},
		},
		{
			name: "duplicate threshold within type",
			defs: []Definition{
				{Key: "a", Type: TypeStreak, Threshold: 3},
				{Key: "b", Type: TypeStreak, Threshold: 3},
			},
		},
		{
			name: "missing threshold",
			defs: []Definition{{Key: "a", Type: TypeMilestone}},
		},
		{
			name: "special with threshold",
			defs: []Definition{{Key: "a", Type: TypeSpecial, Threshold: 1}},
		},
		{
			name: "unknown type",
			defs: []Definition{{Key: "a", Type: "badge", Threshold: 1}},
		},
		{
			name: "empty key",
			defs: []Definition{{Type: TypeStreak, Threshold: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.defs)
			assert.Error(t, err)
		})
	}
}

func TestCatalogSameThresholdAcrossTypesAllowed(t *testing.T) {
	_, err := NewCatalog([]Definition{
		{Key: "streak_3", Type: TypeStreak, Threshold: 3},
		{Key: "chapters_3", Type: TypeChapter, Threshold: 3},
	})
	assert.NoError(t, err)
}
