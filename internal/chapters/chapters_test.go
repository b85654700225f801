package chapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "b.json", `{"id":"beta","title":"Beta","collection":"One","prompts":[{"question":"q1"}]}`)
	writePack(t, dir, "a.json", `{"id":"alpha","title":"Alpha","collection":"One","prompts":[{"question":"q1"},{"question":"q2"}]}`)
	writePack(t, dir, "notes.txt", "ignored")

	lib, err := LoadLibrary(dir)
	require.NoError(t, err)

	list := lib.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].ID, "chapters listed in id order")

	chapter, ok := lib.Get("beta")
	require.True(t, ok)
	assert.Equal(t, "Beta", chapter.Title)

	_, ok = lib.Get("gamma")
	assert.False(t, ok)

	assert.Equal(t, map[string][]string{"One": {"alpha", "beta"}}, lib.Collections())
}

func TestLoadLibraryRejectsBadPacks(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "empty.json", `{"id":"empty","title":"No Prompts","collection":"One","prompts":[]}`)

	_, err := LoadLibrary(dir)
	assert.Error(t, err)
}

func TestLoadLibraryRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "a.json", `{"id":"dup","title":"A","collection":"One","prompts":[{"question":"q"}]}`)
	writePack(t, dir, "b.json", `{"id":"dup","title":"B","collection":"One","prompts":[{"question":"q"}]}`)

	_, err := LoadLibrary(dir)
	assert.Error(t, err)
}

func TestLoadLibraryEmptyDir(t *testing.T) {
	_, err := LoadLibrary(t.TempDir())
	assert.Error(t, err)
}
