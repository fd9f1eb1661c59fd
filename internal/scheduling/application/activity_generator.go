package application

import (
	"fmt"
	"sort"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

// registerClaims records a's weak claim on every overlay cell it holds onto
// the owning Calendar hour, so Hour.LiveClaimCount can see it as a live
// competitor when another activity's conflict count is computed.
func registerClaims(cal *domain.Calendar, a *domain.Activity) {
	for i, claimed := range a.Overlay {
		if claimed {
			cal.Hours[i].AddClaim(a.ID)
		}
	}
}

// clampIndexOf converts t to an absolute hour index, clamping into the
// calendar's addressable range rather than failing — period bounds derived
// from an overflow-shifted goal start can land exactly on a pad boundary.
func clampIndexOf(cal *domain.Calendar, t time.Time) int {
	idx, err := cal.IndexOf(t)
	if err == nil {
		return idx
	}
	if t.Before(cal.Start) {
		return 0
	}
	return len(cal.Hours) - 1
}

// buildOverlay constructs an Activity's calendar_overlay: present only where
// the hour is inside [periodStart, periodEnd), inside the calendar's live
// (non-pad) region, compatible with the goal's filter, and not inside one of
// the goal's not_on slots.
func buildOverlay(cal *domain.Calendar, goal domain.Goal, periodStart, periodEnd time.Time) []bool {
	overlay := make([]bool, len(cal.Hours))
	for i := range overlay {
		if !cal.IsLive(i) {
			continue
		}
		t := cal.TimeAt(i)
		if t.Before(periodStart) || !t.Before(periodEnd) {
			continue
		}
		if !goal.Filter.Allows(t.Hour(), cal.WeekdayOf(i)) {
			continue
		}
		if goal.IsOccupiedAt(t) {
			continue
		}
		overlay[i] = true
	}
	return overlay
}

// activityIDFor builds a stable Activity ID for the j'th (of instances)
// instance within the idx'th (of periodCount) period. The period index is
// only suffixed when there is more than one period, and the instance index
// only when a period carries more than one instance, so a plain "daily"
// goal over a single period keeps its bare goal ID.
func activityIDFor(goalID string, idx, periodCount, j, instances int) string {
	switch {
	case periodCount > 1 && instances > 1:
		return fmt.Sprintf("%s#%d-%d", goalID, idx, j)
	case periodCount > 1:
		return fmt.Sprintf("%s#%d", goalID, idx)
	case instances > 1:
		return fmt.Sprintf("%s#%d", goalID, j)
	default:
		return goalID
	}
}

// GenerateSimple produces one Activity per repetition instance for every
// goal that is neither budget-originating nor tagged to skip its own
// generation (a group goal whose children already cover it). A period whose
// Instances is greater than one (the "N/day"/"N/week" forms) produces that
// many independent Activities sharing the period's window, each with its own
// overlay so they compete for distinct positions within it rather than
// aliasing one another's claims.
func GenerateSimple(goals map[string]domain.Goal, cal *domain.Calendar) []domain.Activity {
	ids := sortedGoalIDs(goals)

	var activities []domain.Activity
	for _, id := range ids {
		g := goals[id]
		if g.Budget != nil || g.SkipOwnActivity {
			continue
		}

		periods := g.Repeat.Periods(g.Start, g.Deadline)
		for idx, period := range periods {
			instances := period.Instances
			if instances <= 0 {
				instances = 1
			}
			for j := 0; j < instances; j++ {
				activityID := activityIDFor(id, idx, len(periods), j, instances)
				overlay := buildOverlay(cal, g, period.Start, period.End)
				a := domain.NewActivity(activityID, id, g.Title, int(g.MinDuration.Hours()), g.MinBlockSize, g.MaxBlockSize, overlay)
				a.Optional = g.Optional
				a.Kind = domain.KindSimple
				a.PeriodStart = clampIndexOf(cal, period.Start)
				a.PeriodEnd = clampIndexOf(cal, period.End)
				registerClaims(cal, &a)
				activities = append(activities, a)
			}
		}
	}
	return activities
}

// GenerateBudgetActivities produces one Activity per live calendar day for
// every budget-originating goal, sized from that day's min-scheduled hours
// (skipping days whose allowed-days filter zeroed the minimum).
func GenerateBudgetActivities(goals map[string]domain.Goal, cal *domain.Calendar) []domain.Activity {
	ids := sortedGoalIDs(goals)

	var activities []domain.Activity
	for _, id := range ids {
		g := goals[id]
		if g.Budget == nil {
			continue
		}

		var budget *domain.Budget
		for _, b := range cal.Budgets {
			if b.OriginatingGoalID == id {
				budget = b
				break
			}
		}
		if budget == nil {
			continue
		}

		dayIdx := 0
		for _, tb := range budget.TimeBudgets {
			if tb.Window != domain.WindowDay || tb.MinScheduled <= 0 {
				if tb.Window == domain.WindowDay {
					dayIdx++
				}
				continue
			}

			activityID := fmt.Sprintf("%s#day%d", id, dayIdx)
			overlay := buildOverlay(cal, g, tb.Start, tb.End)
			a := domain.NewActivity(activityID, id, g.Title, tb.MinScheduled, 1, tb.MinScheduled, overlay)
			a.Kind = domain.KindBudget
			a.PeriodStart = clampIndexOf(cal, tb.Start)
			a.PeriodEnd = clampIndexOf(cal, tb.End)
			registerClaims(cal, &a)
			activities = append(activities, a)
			dayIdx++
		}
	}
	return activities
}

// GenerateGetToMinWeekBudget produces optional 1-hour filler activities,
// one per remaining slack hour on each day that has already met its own
// minimum but whose budget's week window is still short of its minimum.
func GenerateGetToMinWeekBudget(goals map[string]domain.Goal, cal *domain.Calendar) []domain.Activity {
	return generateSlackFiller(goals, cal, domain.KindGetToMinWeekBudget, func(week *domain.TimeBudget) bool {
		return week.Scheduled < week.MinScheduled
	})
}

// GenerateTopUpWeekBudget produces optional 1-hour filler activities, one
// per remaining slack hour on each day below its max, for budgets whose week
// window still has room below its own max.
func GenerateTopUpWeekBudget(goals map[string]domain.Goal, cal *domain.Calendar) []domain.Activity {
	return generateSlackFiller(goals, cal, domain.KindTopUpWeekBudget, func(week *domain.TimeBudget) bool {
		return week.MaxScheduled == domain.Unbounded || week.Scheduled < week.MaxScheduled
	})
}

func generateSlackFiller(goals map[string]domain.Goal, cal *domain.Calendar, kind domain.ActivityKind, weekEligible func(*domain.TimeBudget) bool) []domain.Activity {
	var activities []domain.Activity

	for _, budget := range cal.Budgets {
		g, ok := goals[budget.OriginatingGoalID]
		if !ok {
			continue
		}

		var weeks []*domain.TimeBudget
		var days []*domain.TimeBudget
		for _, tb := range budget.TimeBudgets {
			if tb.Window == domain.WindowWeek {
				weeks = append(weeks, tb)
			} else {
				days = append(days, tb)
			}
		}

		for _, week := range weeks {
			if !weekEligible(week) {
				continue
			}
			for dayIdx, day := range days {
				if day.Start.Before(week.Start) || !day.Start.Before(week.End) {
					continue
				}
				if day.MaxScheduled == domain.Unbounded {
					continue
				}
				if kind == domain.KindGetToMinWeekBudget && day.Scheduled < day.MinScheduled {
					continue
				}
				slack := day.MaxScheduled - day.Scheduled
				if slack <= 0 {
					continue
				}
				for h := 0; h < slack; h++ {
					activityID := fmt.Sprintf("%s#fill-%d-%d-%d", budget.OriginatingGoalID, kindSuffix(kind), dayIdx, h)
					overlay := buildOverlay(cal, g, day.Start, day.End)
					a := domain.NewActivity(activityID, budget.OriginatingGoalID, g.Title, 1, 1, 1, overlay)
					a.Optional = true
					a.Kind = kind
					a.PeriodStart = clampIndexOf(cal, day.Start)
					a.PeriodEnd = clampIndexOf(cal, day.End)
					registerClaims(cal, &a)
					activities = append(activities, a)
				}
			}
		}
	}
	return activities
}

func kindSuffix(kind domain.ActivityKind) int {
	return int(kind)
}

func sortedGoalIDs(goals map[string]domain.Goal) []string {
	ids := make([]string, 0, len(goals))
	for id := range goals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
