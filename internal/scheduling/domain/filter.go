package domain

import "fmt"

// Filter restricts which hours an activity may occupy. AfterHour/BeforeHour
// are hour-of-day bounds in [0, 24]; BeforeHour == AfterHour means no
// restriction. When AfterHour > BeforeHour the window wraps past midnight
// (e.g. 22 -> 8 covers 22:00-23:59 and 00:00-07:59).
type Filter struct {
	AfterHour  int
	BeforeHour int
	OnDays     []Weekday
}

// NoFilter is the zero-value filter: every hour of every day is compatible.
var NoFilter = Filter{}

// NewFilter validates and constructs a Filter.
func NewFilter(afterHour, beforeHour int, onDays []Weekday) (Filter, error) {
	if afterHour < 0 || afterHour > 24 {
		return Filter{}, fmt.Errorf("%w: after_time %d", ErrInvalidFilterHour, afterHour)
	}
	if beforeHour < 0 || beforeHour > 24 {
		return Filter{}, fmt.Errorf("%w: before_time %d", ErrInvalidFilterHour, beforeHour)
	}
	return Filter{AfterHour: afterHour, BeforeHour: beforeHour, OnDays: onDays}, nil
}

// HasTimeWindow reports whether the filter restricts hour-of-day at all.
func (f Filter) HasTimeWindow() bool {
	return f.AfterHour != f.BeforeHour
}

// HasDayRestriction reports whether the filter restricts weekday.
func (f Filter) HasDayRestriction() bool {
	return len(f.OnDays) > 0
}

// AllowsHour reports whether the given hour-of-day (0-23) falls inside the
// filter's time window. A filter with no time window allows every hour.
func (f Filter) AllowsHour(hour int) bool {
	if !f.HasTimeWindow() {
		return true
	}
	if f.AfterHour < f.BeforeHour {
		return hour >= f.AfterHour && hour < f.BeforeHour
	}
	// Wraps past midnight.
	return hour >= f.AfterHour || hour < f.BeforeHour
}

// AllowsDay reports whether the given weekday is permitted. A filter with no
// day restriction allows every day.
func (f Filter) AllowsDay(day Weekday) bool {
	if !f.HasDayRestriction() {
		return true
	}
	return day.In(f.OnDays)
}

// Allows reports whether the filter admits the given hour-of-day and weekday
// together.
func (f Filter) Allows(hour int, day Weekday) bool {
	return f.AllowsHour(hour) && f.AllowsDay(day)
}

// WithImpliedOnDays returns a copy of f with OnDays set to implied when f has
// no explicit day restriction of its own. An explicit restriction on f always
// wins over an implied one from a weekday-named repetition.
func (f Filter) WithImpliedOnDays(implied []Weekday) Filter {
	if f.HasDayRestriction() || len(implied) == 0 {
		return f
	}
	f.OnDays = implied
	return f
}

// WindowHours returns the number of hours-per-day the time window spans; 24
// when the filter has no time window.
func (f Filter) WindowHours() int {
	if !f.HasTimeWindow() {
		return 24
	}
	if f.AfterHour < f.BeforeHour {
		return f.BeforeHour - f.AfterHour
	}
	return 24 - f.AfterHour + f.BeforeHour
}
