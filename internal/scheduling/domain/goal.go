package domain

import (
	"fmt"
	"time"
)

// ActivityKind distinguishes how a generated Activity's claimed hours count
// against a Budget, per SPEC_FULL.md §4.4.
type ActivityKind int

const (
	// KindSimple activities come from ordinary (non-budget) goals; they count
	// against a budget only when their goal participates in one, i.e. is a
	// descendant of a budget-originating goal.
	KindSimple ActivityKind = iota
	// KindBudget activities are generated directly from a goal's budget
	// config and always count toward it.
	KindBudget
	// KindGetToMinWeekBudget activities are optional filler generated to
	// help a budget reach its minimum; failures are not impossibilities.
	KindGetToMinWeekBudget
	// KindTopUpWeekBudget activities are optional filler generated in the
	// final pass for days below their maximum in weeks still below theirs;
	// whether the minimum was met is not checked.
	KindTopUpWeekBudget
)

// NotOnSlot marks a half-open [Start, End) window during which a goal must
// not be scheduled, independent of its own filter.
type NotOnSlot struct {
	Start, End time.Time
}

// BudgetConfig carries a goal's weekly/daily scheduling allowance. A goal
// with a non-nil BudgetConfig generates KindBudget activities instead of
// ordinary repeated ones; Repeat is ignored when BudgetConfig is set.
type BudgetConfig struct {
	Duration    time.Duration
	MinPerDay   *time.Duration
	MaxPerDay   *time.Duration
	MinPerWeek  time.Duration
	MaxPerWeek  *time.Duration
	AllowedDays []Weekday
}

// Validate checks the invariants from SPEC_FULL.md §4.4: the sum of
// min-per-day across allowed days must not exceed min-per-week, and
// max-per-day must not exceed max-per-week.
func (b BudgetConfig) Validate() error {
	if b.MinPerDay != nil {
		days := b.AllowedDays
		if len(days) == 0 {
			days = AllWeekdays
		}
		sum := time.Duration(len(days)) * *b.MinPerDay
		if sum > b.MinPerWeek {
			return ErrBudgetDayExceedsWeek
		}
	}
	if b.MaxPerDay != nil && b.MaxPerWeek != nil && *b.MaxPerDay > *b.MaxPerWeek {
		return ErrBudgetMaxDayExceedsMaxWeek
	}
	return nil
}

// Goal is the fully preprocessed, in-memory form of an input goal record:
// defaults applied, overflow filters normalized, and flex-range repeats
// already expanded into mandatory+optional clones by the Preprocessor. The
// Activity Generator consumes Goals exclusively; it never sees raw input.
type Goal struct {
	ID           string
	Title        string
	MinDuration  time.Duration
	Start        time.Time
	Deadline     time.Time
	Filter       Filter
	Repeat       Repetition
	Budget       *BudgetConfig
	ParentID     string
	ChildIDs     []string
	NotOn        []NotOnSlot
	MinBlockSize int
	MaxBlockSize int
	Optional     bool
	ActivityKind ActivityKind
	// SkipOwnActivity is set by the Preprocessor on every non-budget group
	// goal, whether or not a filler goal was synthesised for a deficit
	// between its children's summed min-durations and its own: the group
	// itself generates no activity, only its children (and any filler) do.
	SkipOwnActivity bool
}

// NewGoal validates and constructs a Goal with MinBlockSize 1 and
// MaxBlockSize at the goal's full duration (at least 1). WithBlockSize sets
// other bounds.
func NewGoal(id, title string, minDuration time.Duration, start, deadline time.Time, filter Filter) (Goal, error) {
	if !deadline.After(start) {
		return Goal{}, fmt.Errorf("goal %q: deadline must be after start", id)
	}
	if minDuration <= 0 {
		return Goal{}, fmt.Errorf("goal %q: min_duration must be positive", id)
	}

	g := Goal{
		ID:           id,
		Title:        title,
		MinDuration:  minDuration,
		Start:        start,
		Deadline:     deadline,
		Filter:       filter,
		MinBlockSize: 1,
		MaxBlockSize: int(minDuration.Hours()),
	}
	if g.MaxBlockSize < 1 {
		g.MaxBlockSize = 1
	}
	return g, nil
}

// WithBlockSize overrides the default block-size bounds, applying the
// degradation rule for a requested minimum above 8 hours.
func (g Goal) WithBlockSize(min, max int) Goal {
	if min > 8 {
		min = 1
	}
	if min < 1 {
		min = 1
	}
	if max < min {
		max = int(g.MinDuration.Hours())
		if max < min {
			max = min
		}
	}
	g.MinBlockSize = min
	g.MaxBlockSize = max
	return g
}

// IsLeaf reports whether the goal has no children, i.e. it directly
// generates activities rather than only grouping other goals.
func (g Goal) IsLeaf() bool {
	return len(g.ChildIDs) == 0
}

// IsOccupiedAt reports whether t falls inside one of the goal's not_on
// windows.
func (g Goal) IsOccupiedAt(t time.Time) bool {
	for _, slot := range g.NotOn {
		if !t.Before(slot.Start) && t.Before(slot.End) {
			return true
		}
	}
	return false
}
