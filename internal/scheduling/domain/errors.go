package domain

import "errors"

// Sentinel errors returned by the scheduling domain. Callers use errors.Is
// and errors.As to distinguish input defects (fatal, the caller's input is
// malformed) from ordinary scheduling outcomes (an impossible goal is not
// an error — it is reported in the Output's Impossible list).
var (
	// ErrUnknownRepetition is returned when a repeat string does not match
	// any recognised grammar.
	ErrUnknownRepetition = errors.New("unrecognised repetition expression")

	// ErrUnknownChild is returned when a goal lists a child id that does not
	// exist in the input's goal set.
	ErrUnknownChild = errors.New("goal references an unknown child id")

	// ErrBudgetDayExceedsWeek is returned when a goal's budget config fails
	// the invariant that the sum of min_per_day over allowed days must not
	// exceed min_per_week.
	ErrBudgetDayExceedsWeek = errors.New("budget min_per_day sum across allowed days exceeds min_per_week")

	// ErrBudgetMaxDayExceedsMaxWeek is returned when a goal's budget config
	// fails the invariant that max_per_day must not exceed max_per_week.
	ErrBudgetMaxDayExceedsMaxWeek = errors.New("budget max_per_day exceeds max_per_week")

	// ErrIndexOutOfRange is returned by Calendar.IndexOf when a date-time is
	// more than one day outside the calendar's bounds.
	ErrIndexOutOfRange = errors.New("date-time is out of the calendar's addressable range")

	// ErrInvalidFilterHour is returned when a filter's after_time/before_time
	// is not within [0, 24].
	ErrInvalidFilterHour = errors.New("filter hour must be within [0, 24]")
)
