package achievements

import (
	"fmt"

	"github.com/memoirly/memoirly-web/internal/logger"
)

// Evaluator diffs a progress snapshot against the catalog and the user's
// existing unlocks, and commits new unlocks through the store's conditional
// insert. It holds no per-user state, so one instance serves every request.
type Evaluator struct {
	catalog *Catalog
	store   Store
	logger  *logger.Log
}

func NewEvaluator(catalog *Catalog, store Store) *Evaluator {
	return &Evaluator{
		catalog: catalog,
		store:   store,
		logger:  logger.New(),
	}
}

// Evaluate returns the achievements newly unlocked by this snapshot, already
// persisted before returning. Every threshold at or below the metric unlocks
// in the same pass, so a user jumping from 0 to 30 memories gets memories_1,
// memories_10 and memories_25 together. When two concurrent evaluations cross
// the same threshold, the conditional insert lets exactly one of them report
// the achievement; the loser treats it as already unlocked. Any storage
// failure aborts the whole call: inserts that committed before the failure
// stay valid but are not reported.
func (e *Evaluator) Evaluate(userID int, snap Snapshot) ([]Definition, error) {
	if err := snap.Counts.validate(); err != nil {
		return nil, err
	}

	existing, err := e.store.ExistingUnlocks(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing unlocks: %w", err)
	}

	var unlocked []Definition
	for _, typ := range []string{TypeMilestone, TypeStreak, TypeChapter, TypeCollection, TypePeople, TypePlaces, TypeTime} {
		metric, _ := snap.Metric(typ)
		for _, def := range e.catalog.ByType(typ) {
			if def.Threshold > metric {
				break // ascending order, nothing further can be crossed
			}
			if existing[def.Key] {
				continue
			}
			inserted, err := e.store.InsertUnlockIfAbsent(userID, def.Key)
			if err != nil {
				return nil, fmt.Errorf("failed to unlock %s: %w", def.Key, err)
			}
			if inserted {
				e.logger.Info(fmt.Sprintf("user %d unlocked achievement %s", userID, def.Key))
				unlocked = append(unlocked, def)
			}
		}
	}

	return unlocked, nil
}

// Event unlocks the special achievement bound to a named contribution event,
// e.g. the first voice memory. It shares the conditional-insert path with
// Evaluate, so it carries the same exactly-once guarantee. Unknown events are
// a no-op: the storage layer records richer events than the catalog rewards.
func (e *Evaluator) Event(userID int, event string) (*Definition, error) {
	key, ok := SpecialEvents[event]
	if !ok {
		return nil, nil
	}

	def, err := e.catalog.Get(key)
	if err != nil {
		return nil, err
	}

	inserted, err := e.store.InsertUnlockIfAbsent(userID, def.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock %s: %w", def.Key, err)
	}
	if !inserted {
		return nil, nil
	}

	e.logger.Info(fmt.Sprintf("user %d unlocked special achievement %s", userID, def.Key))
	return &def, nil
}
