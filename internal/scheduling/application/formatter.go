package application

import (
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

const freeGoalID = "free"

// Format walks the calendar's live region hour by hour, merging adjacent
// hours that share the same (goal id, title) into one task, emitting a
// "free" task across any run of Free hours, and closing the current task at
// every midnight boundary so a task never spans two day records.
func Format(cal *domain.Calendar) Output {
	liveStart, liveEnd := cal.LiveBounds()

	var out Output
	var current *DayTasks
	var open *openTask
	taskIdx := 0

	flush := func() {
		if current == nil || open == nil {
			return
		}
		current.Tasks = append(current.Tasks, TaskRecord{
			TaskID:   taskIdx,
			GoalID:   open.goalID,
			Title:    open.title,
			Duration: open.hours,
			Start:    open.start,
			Deadline: cal.TimeAt(open.startIdx + open.hours),
		})
		taskIdx++
		open = nil
	}

	for i := liveStart; i < liveEnd; i++ {
		t := cal.TimeAt(i)

		if i == liveStart || t.Hour() == 0 {
			flush()
			if current != nil {
				out.Scheduled = append(out.Scheduled, *current)
			}
			day := DayTasks{Day: dayOf(t)}
			current = &day
			taskIdx = 0
		}

		goalID, title := hourIdentity(cal.Hours[i])

		if open != nil && open.goalID == goalID && open.title == title {
			open.hours++
			continue
		}

		flush()
		open = &openTask{goalID: goalID, title: title, start: t, startIdx: i, hours: 1}
	}
	flush()
	if current != nil {
		out.Scheduled = append(out.Scheduled, *current)
	}

	for _, imp := range cal.Impossibilities {
		out.Impossible = append(out.Impossible, ImpossibleActivity{
			ID:                  imp.GoalID,
			HoursMissing:        imp.HoursMissing,
			PeriodStartDateTime: imp.PeriodStart,
			PeriodEndDateTime:   imp.PeriodEnd,
		})
	}

	return out
}

type openTask struct {
	goalID   string
	title    string
	start    time.Time
	startIdx int
	hours    int
}

func hourIdentity(h domain.Hour) (goalID, title string) {
	if h.Status == domain.HourFree {
		return freeGoalID, freeGoalID
	}
	return h.GoalID, h.ActivityTitle
}

// dayOf truncates t to midnight of its own date, used as the DayTasks.Day key.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
