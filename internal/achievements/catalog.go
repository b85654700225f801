package achievements

import (
	"fmt"
	"sort"
)

// Achievement types. Every type except TypeSpecial unlocks by crossing a
// numeric threshold on the matching progress metric.
const (
	TypeStreak     = "streak"
	TypeMilestone  = "milestone"
	TypeChapter    = "chapter"
	TypeCollection = "collection"
	TypePeople     = "people"
	TypePlaces     = "places"
	TypeTime       = "time"
	TypeSpecial    = "special"
)

// Definition is a single achievement in the catalog. Immutable after load.
type Definition struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Threshold   int    `json:"threshold,omitempty"` // zero for special achievements
}

// Catalog is the process-wide, read-only achievement table. It is built once
// at startup and never mutated, so it needs no locking.
type Catalog struct {
	defs   []Definition
	byKey  map[string]Definition
	byType map[string][]Definition
}

var thresholdTypes = map[string]bool{
	TypeStreak:     true,
	TypeMilestone:  true,
	TypeChapter:    true,
	TypeCollection: true,
	TypePeople:     true,
	TypePlaces:     true,
	TypeTime:       true,
}

// NewCatalog validates and indexes the given definitions. Threshold rules are
// enforced here rather than by convention: every non-special definition needs
// a positive threshold, special definitions must not carry one, and within a
// type no two definitions may share a threshold.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:   make([]Definition, 0, len(defs)),
		byKey:  make(map[string]Definition, len(defs)),
		byType: make(map[string][]Definition),
	}

	for _, def := range defs {
		if def.Key == "" {
			return nil, fmt.Errorf("achievement with empty key")
		}
		if _, dup := c.byKey[def.Key]; dup {
			return nil, fmt.Errorf("duplicate achievement key %q", def.Key)
		}

		switch {
		case thresholdTypes[def.Type]:
			if def.Threshold <= 0 {
				return nil, fmt.Errorf("achievement %q: type %s requires a positive threshold", def.Key, def.Type)
			}
		case def.Type == TypeSpecial:
			if def.Threshold != 0 {
				return nil, fmt.Errorf("achievement %q: special achievements cannot have a threshold", def.Key)
			}
		default:
			return nil, fmt.Errorf("achievement %q: unknown type %q", def.Key, def.Type)
		}

		c.defs = append(c.defs, def)
		c.byKey[def.Key] = def
		c.byType[def.Type] = append(c.byType[def.Type], def)
	}

	for typ, group := range c.byType {
		if typ == TypeSpecial {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Threshold < group[j].Threshold })
		for i := 1; i < len(group); i++ {
			if group[i].Threshold == group[i-1].Threshold {
				return nil, fmt.Errorf("achievements %q and %q: duplicate threshold %d for type %s",
					group[i-1].Key, group[i].Key, group[i].Threshold, typ)
			}
		}
	}

	return c, nil
}

// Definitions returns every achievement in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByType returns the achievements of one type, ascending by threshold.
func (c *Catalog) ByType(typ string) []Definition {
	group := c.byType[typ]
	out := make([]Definition, len(group))
	copy(out, group)
	return out
}

// Get looks up a single achievement by key.
func (c *Catalog) Get(key string) (Definition, error) {
	def, ok := c.byKey[key]
	if !ok {
		return Definition{}, fmt.Errorf("achievement %q: %w", key, ErrNotFound)
	}
	return def, nil
}
