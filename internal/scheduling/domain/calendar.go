package domain

import (
	"fmt"
	"time"
)

// HourStatus is the occupancy state of a single calendar hour.
type HourStatus int

const (
	HourFree HourStatus = iota
	HourOccupied
)

// Hour is one addressable slot of the Calendar. Claims tracks which
// activities still consider this hour viable (their overlay has a weak
// claim on it); the Placer releases a claim whenever it removes an hour from
// an activity's overlay, whether by committing a placement elsewhere or by
// culling it during refresh.
type Hour struct {
	Status        HourStatus
	ActivityID    string
	ActivityTitle string
	GoalID        string
	Claims        map[string]struct{}
}

// newHour returns a Free hour with an initialised claims set.
func newHour() Hour {
	return Hour{Status: HourFree, Claims: make(map[string]struct{})}
}

// AddClaim registers activityID as holding a weak claim on this hour.
func (h *Hour) AddClaim(activityID string) {
	h.Claims[activityID] = struct{}{}
}

// ReleaseClaim removes activityID's weak claim, if any.
func (h *Hour) ReleaseClaim(activityID string) {
	delete(h.Claims, activityID)
}

// LiveClaimCount returns the number of activities that still hold a claim on
// this hour, excluding the activity named in except (used when computing
// conflict counts for a candidate placement: an activity never conflicts
// with its own prior claim).
func (h Hour) LiveClaimCount(except string) int {
	n := len(h.Claims)
	if _, ok := h.Claims[except]; ok {
		n--
	}
	return n
}

// Impossibility is the domain-level record of a scheduling shortfall,
// produced either by the Placer (an activity with no admissible position)
// or by the Calendar's budget-shortfall log passes. The application layer
// renders this into the wire ImpossibleActivity record.
type Impossibility struct {
	GoalID       string
	HoursMissing int
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

const padHours = 24

// Calendar is the scheduler's addressable hour vector: a leading 24-hour pad,
// the usable [Start, End) region, and a trailing 24-hour pad. The pads exist
// so that a goal's filter or not_on window straddling Start/End never needs
// special-cased bounds checks in the Activity Generator's overlay walk.
type Calendar struct {
	Start           time.Time
	End             time.Time
	Hours           []Hour
	Budgets         []*Budget
	Impossibilities []Impossibility
}

// NewCalendar builds a Free calendar covering [start, end) plus its pads.
func NewCalendar(start, end time.Time) (*Calendar, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("calendar: end must be after start")
	}
	days := int(end.Sub(start).Hours() / 24)
	if end.Sub(start)%(24*time.Hour) != 0 {
		days++
	}
	capacity := 2*padHours + 24*days

	hours := make([]Hour, capacity)
	for i := range hours {
		hours[i] = newHour()
	}

	return &Calendar{
		Start: start,
		End:   end,
		Hours: hours,
	}, nil
}

// padStart is the date-time represented by index 0 (one pad-width before the
// usable region begins).
func (c *Calendar) padStart() time.Time {
	return c.Start.Add(-padHours * time.Hour)
}

// IndexOf returns the absolute hour index for t. It fails only when t lies
// more than one day outside [Start, End) — i.e. outside the padded range
// entirely.
func (c *Calendar) IndexOf(t time.Time) (int, error) {
	hours := int(t.Sub(c.padStart()).Hours())
	if hours < 0 || hours >= len(c.Hours) {
		return 0, fmt.Errorf("%w: %s", ErrIndexOutOfRange, t.Format(time.RFC3339))
	}
	return hours, nil
}

// TimeAt returns the date-time represented by absolute hour index i.
func (c *Calendar) TimeAt(i int) time.Time {
	return c.padStart().Add(time.Duration(i) * time.Hour)
}

// WeekdayOf returns the Weekday of the date-time at absolute hour index i.
func (c *Calendar) WeekdayOf(i int) Weekday {
	return FromTime(c.TimeAt(i).Weekday())
}

// IsLive reports whether index i falls inside the usable [Start, End) region,
// excluding both pads.
func (c *Calendar) IsLive(i int) bool {
	return i >= padHours && i < len(c.Hours)-padHours
}

// LiveBounds returns the [start, end) absolute hour index range of the
// usable region, excluding both pads.
func (c *Calendar) LiveBounds() (start, end int) {
	return padHours, len(c.Hours) - padHours
}

// AddBudgetsFrom appends to c.Budgets one Budget for the budget-originating
// goal named by originatingID (a leaf or group goal carrying a BudgetConfig)
// and its transitive descendants, generating one Day-budget window at every
// 24-hour boundary and one Week-budget window every 7*24 hours across the
// usable region. Callers invoke it once per budget-originating goal.
func (c *Calendar) AddBudgetsFrom(goals map[string]Goal, originatingID string) (*Budget, error) {
	origin, ok := goals[originatingID]
	if !ok || origin.Budget == nil {
		return nil, fmt.Errorf("%s: not a budget-originating goal", originatingID)
	}

	participants, err := collectDescendants(goals, originatingID)
	if err != nil {
		return nil, err
	}

	budget := NewBudget(originatingID, participants)

	liveStart := padHours
	liveEnd := len(c.Hours) - padHours

	for i := liveStart; i < liveEnd; i += 24 {
		dayStart := c.TimeAt(i)
		dayEnd := c.TimeAt(i + 24)
		weekday := c.WeekdayOf(i)

		min, max := origin.Budget.MinPerDay, origin.Budget.MaxPerDay
		if len(origin.Budget.AllowedDays) > 0 && !weekday.In(origin.Budget.AllowedDays) {
			zero := time.Duration(0)
			min, max = &zero, &zero
		}
		budget.TimeBudgets = append(budget.TimeBudgets, NewTimeBudget(WindowDay, dayStart, dayEnd, min, max))
	}

	for i := liveStart; i < liveEnd; i += 24 * 7 {
		weekStart := c.TimeAt(i)
		weekEnd := weekStart.Add(7 * 24 * time.Hour)
		if weekEndIdx := i + 24*7; weekEndIdx > liveEnd {
			weekEnd = c.TimeAt(liveEnd)
		}
		maxWeek := origin.Budget.MaxPerWeek
		budget.TimeBudgets = append(budget.TimeBudgets,
			NewTimeBudget(WindowWeek, weekStart, weekEnd, &origin.Budget.MinPerWeek, maxWeek))
	}

	c.Budgets = append(c.Budgets, budget)
	return budget, nil
}

func collectDescendants(goals map[string]Goal, id string) ([]string, error) {
	goal, ok := goals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChild, id)
	}
	participants := []string{id}
	for _, childID := range goal.ChildIDs {
		descendants, err := collectDescendants(goals, childID)
		if err != nil {
			return nil, err
		}
		participants = append(participants, descendants...)
	}
	return participants, nil
}

// UpdateBudgetsFor increments `scheduled` on every TimeBudget whose window
// contains hourIndex and whose budget lists goalID as participating.
func (c *Calendar) UpdateBudgetsFor(goalID string, hourIndex int) {
	t := c.TimeAt(hourIndex)
	for _, budget := range c.Budgets {
		if !budget.Participates(goalID) {
			continue
		}
		for _, tb := range budget.TimeBudgets {
			if tb.Contains(t) {
				tb.Scheduled++
			}
		}
	}
}

// LogImpossibleMinDayBudgets appends an Impossibility for every Day-window
// TimeBudget whose scheduled hours remain below its minimum.
func (c *Calendar) LogImpossibleMinDayBudgets() {
	c.logShortfalls(WindowDay)
}

// LogImpossibleMinWeekBudgets appends an Impossibility for every Week-window
// TimeBudget whose scheduled hours remain below its minimum.
func (c *Calendar) LogImpossibleMinWeekBudgets() {
	c.logShortfalls(WindowWeek)
}

func (c *Calendar) logShortfalls(window BudgetWindow) {
	for _, budget := range c.Budgets {
		for _, tb := range budget.TimeBudgets {
			if tb.Window != window {
				continue
			}
			if tb.Scheduled >= tb.MinScheduled {
				continue
			}
			c.Impossibilities = append(c.Impossibilities, Impossibility{
				GoalID:       budget.OriginatingGoalID,
				HoursMissing: tb.MinScheduled - tb.Scheduled,
				PeriodStart:  tb.Start,
				PeriodEnd:    tb.End,
			})
		}
	}
}
