package application_test

import (
	"testing"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/application"
	"github.com/ardenhale/timeloom/internal/scheduling/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupy(t *testing.T, cal *domain.Calendar, at time.Time, goalID, title string) {
	t.Helper()
	idx, err := cal.IndexOf(at)
	require.NoError(t, err)
	cal.Hours[idx].Status = domain.HourOccupied
	cal.Hours[idx].GoalID = goalID
	cal.Hours[idx].ActivityTitle = title
}

func TestFormat_SingleTaskWithFreeSurround(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := newCal(t, start, 1)
	occupy(t, cal, start.Add(10*time.Hour), "dentist", "dentist")

	out := application.Format(cal)

	require.Len(t, out.Scheduled, 1)
	day := out.Scheduled[0]

	want := application.DayTasks{
		Day: start,
		Tasks: []application.TaskRecord{
			{TaskID: 0, GoalID: "free", Title: "free", Duration: 10, Start: start, Deadline: start.Add(10 * time.Hour)},
			{TaskID: 1, GoalID: "dentist", Title: "dentist", Duration: 1, Start: start.Add(10 * time.Hour), Deadline: start.Add(11 * time.Hour)},
			{TaskID: 2, GoalID: "free", Title: "free", Duration: 13, Start: start.Add(11 * time.Hour), Deadline: start.Add(24 * time.Hour)},
		},
	}
	if diff := cmp.Diff(want, day); diff != "" {
		t.Errorf("unexpected day tasks (-want +got):\n%s", diff)
	}
}

func TestFormat_MidnightSplit(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := newCal(t, start, 2)

	for h := 23; h < 25; h++ {
		occupy(t, cal, start.Add(time.Duration(h)*time.Hour), "sleep", "sleep")
	}

	out := application.Format(cal)
	require.Len(t, out.Scheduled, 2)

	day1 := out.Scheduled[0]
	lastTask := day1.Tasks[len(day1.Tasks)-1]
	assert.Equal(t, "sleep", lastTask.GoalID)
	assert.Equal(t, 1, lastTask.Duration)
	assert.Equal(t, start.Add(23*time.Hour), lastTask.Start)

	day2 := out.Scheduled[1]
	firstTask := day2.Tasks[0]
	assert.Equal(t, "sleep", firstTask.GoalID)
	assert.Equal(t, 1, firstTask.Duration)
	assert.Equal(t, start.Add(24*time.Hour), firstTask.Start)
}

func TestFormat_TasksSumToFullDay(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := newCal(t, start, 3)
	occupy(t, cal, start.Add(9*time.Hour), "work", "work")
	occupy(t, cal, start.Add(33*time.Hour), "gym", "gym")

	out := application.Format(cal)
	require.Len(t, out.Scheduled, 3)
	for _, day := range out.Scheduled {
		total := 0
		for _, task := range day.Tasks {
			total += task.Duration
		}
		assert.Equal(t, 24, total)
	}
}

func TestFormat_ImpossibleConversion(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := newCal(t, start, 1)
	cal.Impossibilities = append(cal.Impossibilities, domain.Impossibility{
		GoalID:       "gym",
		HoursMissing: 3,
		PeriodStart:  start,
		PeriodEnd:    start.Add(24 * time.Hour),
	})

	out := application.Format(cal)
	require.Len(t, out.Impossible, 1)
	assert.Equal(t, "gym", out.Impossible[0].ID)
	assert.Equal(t, 3, out.Impossible[0].HoursMissing)
	assert.Equal(t, start, out.Impossible[0].PeriodStartDateTime)
	assert.Equal(t, start.Add(24*time.Hour), out.Impossible[0].PeriodEndDateTime)
}
