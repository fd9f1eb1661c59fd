package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/application"
	"github.com/ardenhale/timeloom/internal/scheduling/application/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScheduleHandler_SchedulesSimpleGoal(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	duration := 1
	input := application.Input{
		StartDate: start,
		EndDate:   end,
		Goals: map[string]application.GoalRecord{
			"dentist": {
				Title:       "dentist",
				MinDuration: &duration,
				Filters:     &application.FilterRecord{AfterTime: 10, BeforeTime: 11},
			},
		},
	}

	h := commands.NewRunScheduleHandler(nil)
	out, err := h.Handle(context.Background(), commands.RunScheduleCommand{Input: input})
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out.Impossible)

	require.Len(t, out.Scheduled, 1)
	var found bool
	for _, task := range out.Scheduled[0].Tasks {
		if task.GoalID == "dentist" {
			found = true
			assert.Equal(t, 1, task.Duration)
		}
	}
	assert.True(t, found, "expected a dentist task to be scheduled")
}

func TestRunScheduleHandler_ReportsImpossibleGoal(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	duration := 2
	input := application.Input{
		StartDate: start,
		EndDate:   end,
		Goals: map[string]application.GoalRecord{
			"dentist": {
				Title:       "dentist",
				MinDuration: &duration,
				Filters:     &application.FilterRecord{AfterTime: 10, BeforeTime: 11},
			},
		},
	}

	h := commands.NewRunScheduleHandler(nil)
	out, err := h.Handle(context.Background(), commands.RunScheduleCommand{Input: input})
	require.NoError(t, err)
	require.Len(t, out.Impossible, 1)
	assert.Equal(t, "dentist", out.Impossible[0].ID)
}

func TestRunScheduleHandler_RejectsUnknownChild(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	input := application.Input{
		StartDate: start,
		EndDate:   end,
		Goals: map[string]application.GoalRecord{
			"parent": {Title: "parent", Children: []string{"missing"}},
		},
	}

	h := commands.NewRunScheduleHandler(nil)
	_, err := h.Handle(context.Background(), commands.RunScheduleCommand{Input: input})
	assert.Error(t, err)
}
