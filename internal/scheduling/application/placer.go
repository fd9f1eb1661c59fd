package application

import (
	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

// Place runs the Placer's per-iteration state machine until no Unprocessed
// activity remains, then runs the GetToMinWeekBudget and TopUpWeekBudget
// post-loop passes and logs any remaining budget shortfalls.
func Place(goals map[string]domain.Goal, cal *domain.Calendar, activities []domain.Activity) []domain.Activity {
	runLoop(goals, cal, activities)

	topUp := GenerateGetToMinWeekBudget(goals, cal)
	topUp = runLoop(goals, cal, topUp)
	activities = append(activities, topUp...)

	fill := GenerateTopUpWeekBudget(goals, cal)
	fill = runLoop(goals, cal, fill)
	activities = append(activities, fill...)

	cal.LogImpossibleMinDayBudgets()
	cal.LogImpossibleMinWeekBudgets()

	return activities
}

// runLoop drives one set of activities through the state machine to
// completion (every activity ends Scheduled or Impossible), returning the
// same slice for the caller's bookkeeping.
func runLoop(goals map[string]domain.Goal, cal *domain.Calendar, activities []domain.Activity) []domain.Activity {
	for {
		unprocessed := unprocessedIndices(activities)
		if len(unprocessed) == 0 {
			return activities
		}

		for _, idx := range unprocessed {
			refresh(&activities[idx], cal, goals)
		}

		if handleFlexZero(activities, unprocessed, cal) {
			continue
		}
		if handleFlexOne(activities, unprocessed, cal) {
			continue
		}

		idx := chooseMaxFlex(activities, unprocessed)
		placeOne(&activities[idx], cal)
	}
}

func unprocessedIndices(activities []domain.Activity) []int {
	var idxs []int
	for i, a := range activities {
		if a.Status == domain.StatusUnprocessed {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// refresh culls overlay cells whose hour has become Occupied, and cells
// whose single-hour commitment would already violate a participating
// budget's admissibility for this activity's kind.
func refresh(a *domain.Activity, cal *domain.Calendar, goals map[string]domain.Goal) {
	a.RefreshOverlay(cal)

	participating := participatingBudgets(cal, a.GoalID)
	if len(participating) == 0 {
		return
	}
	for i, claimed := range a.Overlay {
		if !claimed {
			continue
		}
		t := cal.TimeAt(i)
		for _, b := range participating {
			if !b.IntersectingAdmits(a.Kind, t, 1) {
				a.ReleaseClaim(cal, i)
				break
			}
		}
	}
}

func participatingBudgets(cal *domain.Calendar, goalID string) []*domain.Budget {
	var out []*domain.Budget
	for _, b := range cal.Budgets {
		if b.Participates(goalID) {
			out = append(out, b)
		}
	}
	return out
}

// handleFlexZero marks the first unprocessed activity with zero flexibility
// Impossible and reports true if it did so, per the Placer's priority: a
// hopeless activity is resolved before any placement work happens this
// iteration.
func handleFlexZero(activities []domain.Activity, unprocessed []int, cal *domain.Calendar) bool {
	for _, idx := range unprocessed {
		if activities[idx].Flex() == 0 {
			markImpossible(&activities[idx], cal)
			return true
		}
	}
	return false
}

// handleFlexOne places the first unprocessed activity with exactly one
// admissible starting position immediately, skipping the flexibility
// comparison entirely (there is nothing to compare against a sole option).
func handleFlexOne(activities []domain.Activity, unprocessed []int, cal *domain.Calendar) bool {
	for _, idx := range unprocessed {
		if activities[idx].Flex() == 1 {
			placeOne(&activities[idx], cal)
			return true
		}
	}
	return false
}

// chooseMaxFlex returns the index of the unprocessed activity with the
// highest flexibility, breaking ties by earliest activity id.
func chooseMaxFlex(activities []domain.Activity, unprocessed []int) int {
	best := unprocessed[0]
	bestFlex := activities[best].Flex()
	for _, idx := range unprocessed[1:] {
		flex := activities[idx].Flex()
		if flex > bestFlex || (flex == bestFlex && activities[idx].ID < activities[best].ID) {
			best = idx
			bestFlex = flex
		}
	}
	return best
}

func placeOne(a *domain.Activity, cal *domain.Calendar) {
	pos, _, found := a.FindBestPosition(cal)
	if !found {
		markImpossible(a, cal)
		return
	}
	a.Commit(cal, pos)
}

func markImpossible(a *domain.Activity, cal *domain.Calendar) {
	hoursMissing := a.HoursMissing()
	periodStart, periodEnd := cal.TimeAt(a.PeriodStart), cal.TimeAt(a.PeriodEnd)
	a.MarkImpossible(cal)
	if a.Optional {
		return
	}
	cal.Impossibilities = append(cal.Impossibilities, domain.Impossibility{
		GoalID:       a.GoalID,
		HoursMissing: hoursMissing,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	})
}
