package application

import (
	"fmt"
	"sort"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

// Preprocess runs the Goal Preprocessor's five operations over the raw input
// and returns a keyed map of fully processed goals, ready for the Activity
// Generator. Any invariant violation in the input is a fatal error naming
// the offending goal.
func Preprocess(input Input) (map[string]domain.Goal, error) {
	goals := make(map[string]domain.Goal, len(input.Goals))

	ids := make([]string, 0, len(input.Goals))
	for id := range input.Goals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		record := input.Goals[id]
		goal, err := buildGoal(id, record, input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		goals[id] = goal
	}

	if err := validateChildren(goals); err != nil {
		return nil, err
	}
	if err := validateBudgets(goals); err != nil {
		return nil, err
	}

	synthesizeFillers(goals)

	if err := expandFlexRepeats(goals); err != nil {
		return nil, err
	}

	return goals, nil
}

// buildGoal populates defaults, converts the wire filter, and applies
// overflow-filter normalisation.
func buildGoal(id string, r GoalRecord, calStart, calEnd time.Time) (domain.Goal, error) {
	start := calStart
	if r.Start != nil {
		start = *r.Start
	}
	deadline := calEnd
	if r.Deadline != nil {
		deadline = *r.Deadline
	}

	minDuration := time.Hour
	if r.MinDuration != nil {
		minDuration = time.Duration(*r.MinDuration) * time.Hour
	}

	filter := domain.NoFilter
	if r.Filters != nil {
		onDays, err := parseWeekdays(r.Filters.OnDays)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("goal %q: %w", id, err)
		}
		filter, err = domain.NewFilter(r.Filters.AfterTime, r.Filters.BeforeTime, onDays)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("goal %q: %w", id, err)
		}
	}

	if filter.AfterHour > filter.BeforeHour {
		start = start.Add(-time.Duration(24-filter.AfterHour) * time.Hour)
		deadline = deadline.Add(time.Duration(filter.BeforeHour) * time.Hour)
	}

	goal, err := domain.NewGoal(id, r.Title, minDuration, start, deadline, filter)
	if err != nil {
		return domain.Goal{}, err
	}
	goal.ChildIDs = r.Children

	for _, slot := range r.NotOn {
		goal.NotOn = append(goal.NotOn, domain.NotOnSlot{Start: slot.Start, End: slot.End})
	}

	if r.Budget != nil {
		cfg := &domain.BudgetConfig{MinPerWeek: time.Duration(r.Budget.MinPerWeek) * time.Hour}
		if r.Budget.MinPerDay != nil {
			d := time.Duration(*r.Budget.MinPerDay) * time.Hour
			cfg.MinPerDay = &d
		}
		if r.Budget.MaxPerDay != nil {
			d := time.Duration(*r.Budget.MaxPerDay) * time.Hour
			cfg.MaxPerDay = &d
		}
		if r.Budget.MaxPerWeek != nil {
			d := time.Duration(*r.Budget.MaxPerWeek) * time.Hour
			cfg.MaxPerWeek = &d
		}
		cfg.AllowedDays = filter.OnDays
		goal.Budget = cfg
		// Resolved open question: budget config takes precedence over repeat.
	} else if r.Repeat != "" {
		rep, err := domain.ParseRepetition(r.Repeat)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("goal %q: %w", id, err)
		}
		goal.Filter = goal.Filter.WithImpliedOnDays(rep.ImpliedOnDays)
		goal.Repeat = rep
	}

	goal = goal.WithBlockSize(int(minDuration.Hours()), int(minDuration.Hours()))

	return goal, nil
}

func validateChildren(goals map[string]domain.Goal) error {
	for id, g := range goals {
		for _, childID := range g.ChildIDs {
			if _, ok := goals[childID]; !ok {
				return fmt.Errorf("goal %q: %w: %s", id, domain.ErrUnknownChild, childID)
			}
		}
	}
	return nil
}

func validateBudgets(goals map[string]domain.Goal) error {
	for id, g := range goals {
		if g.Budget == nil {
			continue
		}
		if err := g.Budget.Validate(); err != nil {
			return fmt.Errorf("goal %q: %w", id, err)
		}
	}
	return nil
}

// synthesizeFillers implements filler synthesis: every non-budget goal with
// children is tagged to skip generating its own activity, and where the
// children's summed min-durations fall short of the parent's own
// min-duration, a filler goal carrying the deficit is emitted as well.
func synthesizeFillers(goals map[string]domain.Goal) {
	ids := make([]string, 0, len(goals))
	for id := range goals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		g := goals[id]
		if g.Budget != nil || len(g.ChildIDs) == 0 {
			continue
		}

		var childSum time.Duration
		for _, childID := range g.ChildIDs {
			childSum += goals[childID].MinDuration
		}

		g.SkipOwnActivity = true
		goals[id] = g

		deficit := g.MinDuration - childSum
		if deficit <= 0 {
			continue
		}

		fillerID := id + "-filler"
		filler, err := domain.NewGoal(fillerID, g.Title+" (filler)", deficit, g.Start, g.Deadline, g.Filter)
		if err != nil {
			continue
		}
		filler.ParentID = id
		filler.Optional = true
		goals[fillerID] = filler
	}
}

// expandFlexRepeats implements flex-repeat expansion: a goal whose repeat is
// an "x-y/week" or "x-y/day" flex range becomes one mandatory clone per
// period instance plus (y-1) clones, with clones at index >= x tagged
// optional. Clone ids preserve the original's deterministic suffix scheme
// for output stability across re-runs.
func expandFlexRepeats(goals map[string]domain.Goal) error {
	ids := make([]string, 0, len(goals))
	for id := range goals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		g := goals[id]
		if !g.Repeat.IsFlexRange() {
			continue
		}

		min, max := g.Repeat.FlexMin, g.Repeat.FlexMax
		baseKind := domain.RepeatWeekly
		if !g.Repeat.FlexPeriodIsWeek {
			baseKind = domain.RepeatDaily
		}

		g.Repeat = domain.Repetition{Kind: baseKind, N: 1}
		goals[id] = g

		for i := 1; i < max; i++ {
			clone := g
			if i < min {
				clone.ID = fmt.Sprintf("%s-repeat-%d", id, i)
			} else {
				clone.ID = fmt.Sprintf("%s-repeat-opt-%d", id, i)
				clone.Optional = true
			}
			goals[clone.ID] = clone
		}
	}
	return nil
}
