package chapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Prompt is one guided question within a chapter.
type Prompt struct {
	Question string `json:"question"`
	Hint     string `json:"hint,omitempty"`
}

// Credit attributes a chapter illustration.
type Credit struct {
	ImagePath  string `json:"image_path"`
	CreditHTML string `json:"credit_html"`
}

// Chapter is a pack of memoir prompts loaded from JSON.
type Chapter struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Collection  string   `json:"collection"`
	Description string   `json:"description"`
	Prompts     []Prompt `json:"prompts"`
	Credits     []Credit `json:"credits,omitempty"`
}

// LoadChapterFromFile loads a chapter pack from a JSON file
func LoadChapterFromFile(filename string) (Chapter, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Chapter{}, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var chapter Chapter
	if err := decoder.Decode(&chapter); err != nil {
		return Chapter{}, fmt.Errorf("failed to decode chapter JSON: %w", err)
	}

	if chapter.ID == "" || len(chapter.Prompts) == 0 {
		return Chapter{}, fmt.Errorf("chapter file %s is missing an id or prompts", filename)
	}

	return chapter, nil
}

// Library holds every loaded chapter pack, indexed by id.
type Library struct {
	chapters map[string]Chapter
	order    []string
}

// LoadLibrary scans a directory for chapter pack JSON files.
func LoadLibrary(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapters directory %s: %w", dir, err)
	}

	lib := &Library{chapters: make(map[string]Chapter)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		chapter, err := LoadChapterFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, dup := lib.chapters[chapter.ID]; dup {
			return nil, fmt.Errorf("duplicate chapter id %q", chapter.ID)
		}
		lib.chapters[chapter.ID] = chapter
		lib.order = append(lib.order, chapter.ID)
	}

	if len(lib.order) == 0 {
		return nil, fmt.Errorf("no chapter packs found in %s", dir)
	}

	sort.Strings(lib.order)
	return lib, nil
}

// Get returns a chapter by id.
func (l *Library) Get(id string) (Chapter, bool) {
	c, ok := l.chapters[id]
	return c, ok
}

// List returns every chapter in id order.
func (l *Library) List() []Chapter {
	out := make([]Chapter, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.chapters[id])
	}
	return out
}

// Collections groups chapter ids by collection name.
func (l *Library) Collections() map[string][]string {
	out := make(map[string][]string)
	for _, id := range l.order {
		c := l.chapters[id]
		out[c.Collection] = append(out[c.Collection], id)
	}
	return out
}
