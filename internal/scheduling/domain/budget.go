package domain

import "time"

// BudgetWindow distinguishes a TimeBudget's period width.
type BudgetWindow int

const (
	WindowDay BudgetWindow = iota
	WindowWeek
)

// Unbounded marks a TimeBudget's MaxScheduled as having no cap.
const Unbounded = -1

// TimeBudget is one Day- or Week-window allowance against which committed
// placements are counted. MinScheduled/MaxScheduled are measured in hours.
type TimeBudget struct {
	Window       BudgetWindow
	Start, End   time.Time
	MinScheduled int
	MaxScheduled int
	Scheduled    int
}

// NewTimeBudget converts the goal's configured min/max durations (nil means
// "no minimum" / "no cap" respectively) into an hour-counted TimeBudget.
func NewTimeBudget(window BudgetWindow, start, end time.Time, min, max *time.Duration) *TimeBudget {
	tb := &TimeBudget{Window: window, Start: start, End: end, MaxScheduled: Unbounded}
	if min != nil {
		tb.MinScheduled = int(min.Hours())
	}
	if max != nil {
		tb.MaxScheduled = int(max.Hours())
	}
	return tb
}

// Contains reports whether t falls inside [Start, End).
func (tb *TimeBudget) Contains(t time.Time) bool {
	return !t.Before(tb.Start) && t.Before(tb.End)
}

// EffectiveCap returns the hour cap that applies for the given ActivityKind,
// per SPEC_FULL.md §4.4: SimpleGoal/Budget activities may not push scheduled
// past the minimum before every budget has had a chance at its floor;
// GetToMinWeekBudget caps a Day-window at its max_scheduled while still
// capping a Week-window at its own minimum; and
// TopUpWeekBudget always uses max_scheduled.
func (tb *TimeBudget) EffectiveCap(kind ActivityKind) int {
	switch kind {
	case KindSimple, KindBudget:
		return tb.MinScheduled
	case KindGetToMinWeekBudget:
		if tb.Window == WindowWeek {
			return tb.MinScheduled
		}
		return tb.MaxScheduled
	case KindTopUpWeekBudget:
		return tb.MaxScheduled
	default:
		return tb.MinScheduled
	}
}

// Admits reports whether adding `hours` more scheduled hours stays within the
// effective cap for kind. An Unbounded cap always admits.
func (tb *TimeBudget) Admits(kind ActivityKind, hours int) bool {
	limit := tb.EffectiveCap(kind)
	if limit == Unbounded {
		return true
	}
	return tb.Scheduled+hours <= limit
}

// Budget groups the TimeBudgets generated for one budget-originating goal and
// its transitive descendants, which all share and are measured against the
// same windows.
type Budget struct {
	OriginatingGoalID  string
	ParticipatingGoals map[string]struct{}
	TimeBudgets        []*TimeBudget
}

// NewBudget constructs a Budget from the originating goal id and its full
// participant list (itself plus every transitive descendant).
func NewBudget(originatingID string, participants []string) *Budget {
	set := make(map[string]struct{}, len(participants))
	for _, id := range participants {
		set[id] = struct{}{}
	}
	return &Budget{
		OriginatingGoalID:  originatingID,
		ParticipatingGoals: set,
		TimeBudgets:        nil,
	}
}

// Participates reports whether goalID is a member of this budget's
// participant set.
func (b *Budget) Participates(goalID string) bool {
	_, ok := b.ParticipatingGoals[goalID]
	return ok
}

// IntersectingAdmits reports whether committing `hours` hours at time t is
// admissible against every TimeBudget of b, for the given ActivityKind. It
// does not mutate state; Calendar.UpdateBudgetsFor performs the actual
// commit once the Placer has confirmed admissibility across all budgets a
// placement intersects.
func (b *Budget) IntersectingAdmits(kind ActivityKind, t time.Time, hours int) bool {
	for _, tb := range b.TimeBudgets {
		if tb.Contains(t) && !tb.Admits(kind, hours) {
			return false
		}
	}
	return true
}
