package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/application"
	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

// RunScheduleCommand carries a scheduling request through the pipeline:
// preprocess goals, build the calendar, generate activities, place them, and
// format the result.
type RunScheduleCommand struct {
	Input application.Input
}

// RunScheduleHandler wires the preprocessor, calendar, activity generator,
// placer, and formatter into a single run.
type RunScheduleHandler struct {
	logger *slog.Logger
}

// NewRunScheduleHandler creates a new RunScheduleHandler.
func NewRunScheduleHandler(logger *slog.Logger) *RunScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunScheduleHandler{logger: logger}
}

// Handle executes the RunScheduleCommand and returns the formatted output.
func (h *RunScheduleHandler) Handle(ctx context.Context, cmd RunScheduleCommand) (*application.Output, error) {
	start := time.Now()
	input := cmd.Input

	goals, err := application.Preprocess(input)
	if err != nil {
		return nil, fmt.Errorf("preprocess goals: %w", err)
	}

	cal, err := domain.NewCalendar(input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("build calendar: %w", err)
	}

	for id, g := range goals {
		if g.Budget == nil {
			continue
		}
		if _, err := cal.AddBudgetsFrom(goals, id); err != nil {
			return nil, fmt.Errorf("add budgets for %s: %w", id, err)
		}
	}

	var activities []domain.Activity
	activities = append(activities, application.GenerateSimple(goals, cal)...)
	activities = append(activities, application.GenerateBudgetActivities(goals, cal)...)

	application.Place(goals, cal, activities)

	out := application.Format(cal)

	h.logger.InfoContext(ctx, "schedule run completed",
		"goal_count", len(goals),
		"activity_count", len(activities),
		"scheduled_days", len(out.Scheduled),
		"impossible_count", len(out.Impossible),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &out, nil
}
