// Package progress tracks how close each category is to its revenue goal and
// decides when the one-time goal celebration plays.
package progress

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"painel/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Percent returns current as a percentage of target, clamped to [0, 100]
// and truncated to two decimals, so it reads 100 only when the goal is met.
// A zero or negative target counts as already met.
func Percent(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 100
	}
	pct := current.Mul(hundred).Div(target)
	switch {
	case pct.GreaterThan(hundred):
		return 100
	case pct.IsNegative():
		return 0
	}
	f, _ := pct.Truncate(2).Float64()
	return f
}

// Met reports whether current reaches target exactly, without rounding.
func Met(current, target decimal.Decimal) bool {
	return !target.IsPositive() || current.GreaterThanOrEqual(target)
}

// State is a category's position relative to its goal.
type State string

const (
	// BelowGoal means progress is under 100%.
	BelowGoal State = "BELOW_GOAL"
	// AtGoal means the goal was reached and its celebration played.
	AtGoal State = "AT_GOAL"
	// AlreadyCelebrated means the goal was reached but its celebration had
	// already played before, so it was suppressed.
	AlreadyCelebrated State = "ALREADY_CELEBRATED"
)

// CelebrationStore persists the celebrated set.
type CelebrationStore interface {
	LoadCelebrated(ctx context.Context) (models.CelebratedSet, error)
	SaveCelebrated(ctx context.Context, set models.CelebratedSet) error
}

// Celebrator plays the goal-reached effect for a category.
type Celebrator interface {
	Celebrate(ctx context.Context, category models.Category)
}

// CelebratorFunc adapts a function to Celebrator.
type CelebratorFunc func(ctx context.Context, category models.Category)

func (f CelebratorFunc) Celebrate(ctx context.Context, category models.Category) {
	f(ctx, category)
}

// Result is the outcome of one observation.
type Result struct {
	Category models.Category `json:"category"`
	Percent  float64         `json:"percent"`
	State    State           `json:"state"`
	// Reached is true whenever progress is at 100%.
	Reached bool `json:"reached"`
	// Celebrated is true only on the observation that played the effect.
	Celebrated bool `json:"celebrated"`
}

// Tracker holds per-category goal state. It is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	store      CelebrationStore
	celebrator Celebrator
	log        *zap.SugaredLogger

	states map[models.Category]State
	// fired holds categories celebrated by this tracker, so a failed persist
	// cannot cause a second celebration.
	fired models.CelebratedSet
}

// NewTracker creates a Tracker. All categories start BelowGoal.
func NewTracker(store CelebrationStore, celebrator Celebrator, log *zap.SugaredLogger) *Tracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if celebrator == nil {
		celebrator = CelebratorFunc(func(context.Context, models.Category) {})
	}
	return &Tracker{
		store:      store,
		celebrator: celebrator,
		log:        log,
		states:     make(map[models.Category]State),
		fired:      models.NewCelebratedSet(),
	}
}

// State returns the current state of category.
func (t *Tracker) State(category models.Category) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state(category)
}

// Observe feeds the latest total for category into the state machine.
func (t *Tracker) Observe(ctx context.Context, category models.Category, current, target decimal.Decimal) Result {
	res := Result{Category: category, Percent: Percent(current, target)}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !Met(current, target) {
		t.states[category] = BelowGoal
		res.State = BelowGoal
		return res
	}

	res.Reached = true
	if prev := t.state(category); prev != BelowGoal {
		res.State = prev
		return res
	}

	set := t.loadCelebrated(ctx)
	if set.Has(category) || t.fired.Has(category) {
		t.states[category] = AlreadyCelebrated
		res.State = AlreadyCelebrated
		return res
	}

	set.Add(category)
	t.fired.Add(category)
	if err := t.store.SaveCelebrated(ctx, set); err != nil {
		t.log.Errorw("failed to persist celebrated goal", "category", category, "error", err)
	}

	t.states[category] = AtGoal
	res.State = AtGoal
	res.Celebrated = true
	t.celebrator.Celebrate(ctx, category)
	return res
}

// Celebrated returns the persisted set merged with the categories this
// tracker celebrated.
func (t *Tracker) Celebrated(ctx context.Context) models.CelebratedSet {
	t.mu.Lock()
	defer t.mu.Unlock()

	set := t.loadCelebrated(ctx)
	for c := range t.fired {
		set.Add(c)
	}
	return set
}

func (t *Tracker) state(category models.Category) State {
	if s, ok := t.states[category]; ok {
		return s
	}
	return BelowGoal
}

func (t *Tracker) loadCelebrated(ctx context.Context) models.CelebratedSet {
	set, err := t.store.LoadCelebrated(ctx)
	if err != nil {
		t.log.Warnw("failed to load celebrated goals, assuming none", "error", err)
		return models.NewCelebratedSet()
	}
	if set == nil {
		return models.NewCelebratedSet()
	}
	return set
}
