// Package application wires the scheduling domain to its external JSON
// contract: Input is deserialised by adapter/cli, run through the pipeline
// in run_schedule.go, and the result serialised back out as Output. No type
// in this file is ever reached by the domain package directly.
package application

import "time"

// Input is the deserialised form of a scheduling request.
type Input struct {
	StartDate time.Time             `json:"startDate"`
	EndDate   time.Time             `json:"endDate"`
	Goals     map[string]GoalRecord `json:"goals"`
}

// GoalRecord is one entry of Input.Goals.
type GoalRecord struct {
	Title       string              `json:"title"`
	MinDuration *int                `json:"min_duration,omitempty"`
	Budget      *BudgetConfigRecord `json:"budget,omitempty"`
	Repeat      string              `json:"repeat,omitempty"`
	Start       *time.Time          `json:"start,omitempty"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
	Filters     *FilterRecord       `json:"filters,omitempty"`
	Children    []string            `json:"children,omitempty"`
	NotOn       []SlotRecord        `json:"not_on,omitempty"`
}

// BudgetConfigRecord is the wire form of a goal's budget allowance.
type BudgetConfigRecord struct {
	MinPerDay  *int `json:"min_per_day,omitempty"`
	MaxPerDay  *int `json:"max_per_day,omitempty"`
	MinPerWeek int  `json:"min_per_week"`
	MaxPerWeek *int `json:"max_per_week,omitempty"`
}

// FilterRecord is the wire form of a goal's time/day filter.
type FilterRecord struct {
	AfterTime  int      `json:"after_time"`
	BeforeTime int      `json:"before_time"`
	OnDays     []string `json:"on_days,omitempty"`
}

// SlotRecord is a half-open [Start, End) exclusion window.
type SlotRecord struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Output is the serialised result of a scheduling run.
type Output struct {
	Scheduled  []DayTasks           `json:"scheduled"`
	Impossible []ImpossibleActivity `json:"impossible"`
}

// DayTasks groups every task placed on a single calendar day, in start-time
// order.
type DayTasks struct {
	Day   time.Time    `json:"day"`
	Tasks []TaskRecord `json:"tasks"`
}

// TaskRecord is one contiguous, same-(goal,title) run of hours within a day.
type TaskRecord struct {
	TaskID   int       `json:"taskid"`
	GoalID   string    `json:"goalid"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"`
	Start    time.Time `json:"start"`
	Deadline time.Time `json:"deadline"`
}

// ImpossibleActivity reports a goal (or budget window) the scheduler could
// not satisfy.
type ImpossibleActivity struct {
	ID                  string    `json:"id"`
	HoursMissing        int       `json:"hours_missing"`
	PeriodStartDateTime time.Time `json:"period_start_date_time"`
	PeriodEndDateTime   time.Time `json:"period_end_date_time"`
}
