package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RepetitionKind identifies the shape of a parsed repetition expression.
type RepetitionKind int

const (
	RepeatNone RepetitionKind = iota
	RepeatDaily
	RepeatWeekly
	RepeatEveryXDays
	RepeatEveryXHours
)

// Repetition is the parsed form of a goal's "repeat" string. FlexMin/FlexMax
// are non-zero only for "x-y/day" and "x-y/week" forms; the Goal Preprocessor
// expands those into mandatory+optional clones before activity generation
// ever sees a Repetition, so the Activity Generator only needs to handle
// Kind and N.
type Repetition struct {
	Kind RepetitionKind
	// N is instances-per-period for RepeatDaily/RepeatWeekly, and the step
	// size (in days or hours) for RepeatEveryXDays/RepeatEveryXHours.
	N int
	// ImpliedOnDays is set for "weekdays", "weekends", and the named
	// single-weekday forms; the Preprocessor merges it into the goal's
	// filter if the goal has no explicit on_days.
	ImpliedOnDays []Weekday
	// FlexMin/FlexMax are set for "x-y/day" and "x-y/week"; zero otherwise.
	FlexMin, FlexMax int
	// FlexPeriodIsWeek distinguishes "x-y/week" from "x-y/day".
	FlexPeriodIsWeek bool
}

var namedWeekdays = map[string]Weekday{
	"mondays":    Monday,
	"tuesdays":   Tuesday,
	"wednesdays": Wednesday,
	"thursdays":  Thursday,
	"fridays":    Friday,
	"saturdays":  Saturday,
	"sundays":    Sunday,
}

// ParseRepetition parses the repeat-string grammar described by the external
// interface: "daily", "hourly", "weekly", "weekdays", "weekends",
// "mondays".."sundays", "N/day", "N/week", "x-y/day", "x-y/week",
// "every X days", "every X hours".
func ParseRepetition(s string) (Repetition, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "daily":
		return Repetition{Kind: RepeatDaily, N: 1}, nil
	case "hourly":
		return Repetition{Kind: RepeatEveryXHours, N: 1}, nil
	case "weekly":
		return Repetition{Kind: RepeatWeekly, N: 1}, nil
	case "weekdays":
		return Repetition{Kind: RepeatDaily, N: 1, ImpliedOnDays: Weekdays}, nil
	case "weekends":
		return Repetition{Kind: RepeatDaily, N: 1, ImpliedOnDays: Weekends}, nil
	}

	if wd, ok := namedWeekdays[s]; ok {
		return Repetition{Kind: RepeatWeekly, N: 1, ImpliedOnDays: []Weekday{wd}}, nil
	}

	if rest, ok := strings.CutPrefix(s, "every "); ok {
		fields := strings.Fields(rest)
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[0])
			if err == nil && n > 0 {
				switch fields[1] {
				case "days", "day":
					return Repetition{Kind: RepeatEveryXDays, N: n}, nil
				case "hours", "hour":
					return Repetition{Kind: RepeatEveryXHours, N: n}, nil
				}
			}
		}
		return Repetition{}, fmt.Errorf("%w: %q", ErrUnknownRepetition, s)
	}

	if rep, ok, err := parseCountPerPeriod(s); ok {
		return rep, err
	}

	if rep, ok, err := parseFlexRange(s); ok {
		return rep, err
	}

	return Repetition{}, fmt.Errorf("%w: %q", ErrUnknownRepetition, s)
}

// parseCountPerPeriod handles "N/day" and "N/week".
func parseCountPerPeriod(s string) (Repetition, bool, error) {
	for _, suffix := range []struct {
		text string
		kind RepetitionKind
	}{
		{"/day", RepeatDaily},
		{"/week", RepeatWeekly},
	} {
		if rest, ok := strings.CutSuffix(s, suffix.text); ok {
			if strings.Contains(rest, "-") {
				return Repetition{}, false, nil
			}
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 {
				return Repetition{}, true, fmt.Errorf("%w: %q", ErrUnknownRepetition, s)
			}
			return Repetition{Kind: suffix.kind, N: n}, true, nil
		}
	}
	return Repetition{}, false, nil
}

// parseFlexRange handles "x-y/day" and "x-y/week".
func parseFlexRange(s string) (Repetition, bool, error) {
	for _, suffix := range []struct {
		text   string
		isWeek bool
	}{
		{"/day", false},
		{"/week", true},
	} {
		rest, ok := strings.CutSuffix(s, suffix.text)
		if !ok {
			continue
		}
		parts := strings.SplitN(rest, "-", 2)
		if len(parts) != 2 {
			return Repetition{}, true, fmt.Errorf("%w: %q", ErrUnknownRepetition, s)
		}
		min, errMin := strconv.Atoi(parts[0])
		max, errMax := strconv.Atoi(parts[1])
		if errMin != nil || errMax != nil || min <= 0 || max < min {
			return Repetition{}, true, fmt.Errorf("%w: %q", ErrUnknownRepetition, s)
		}
		kind := RepeatDaily
		if suffix.isWeek {
			kind = RepeatWeekly
		}
		return Repetition{
			Kind:             kind,
			FlexMin:          min,
			FlexMax:          max,
			FlexPeriodIsWeek: suffix.isWeek,
		}, true, nil
	}
	return Repetition{}, false, nil
}

// IsFlexRange reports whether this Repetition is an "x-y/day" or "x-y/week"
// form awaiting Preprocessor expansion into mandatory+optional clones.
func (r Repetition) IsFlexRange() bool {
	return r.FlexMax > 0
}

// Period is one instance-window produced by Periods: an Activity is
// generated within [Start, End) with the given instance count.
type Period struct {
	Start, End time.Time
	Instances  int
}

// Periods generates the sequence of repetition-instance windows for a goal
// whose (possibly overflow-shifted) bounds are [start, deadline). Periods
// step from start so that a midnight-wrapping filter's compatible window is
// never split across a period boundary (see SPEC_FULL.md §4.1).
func (r Repetition) Periods(start, deadline time.Time) []Period {
	if !deadline.After(start) {
		return nil
	}

	switch r.Kind {
	case RepeatNone:
		return []Period{{Start: start, End: deadline, Instances: 1}}
	case RepeatDaily:
		return stepPeriods(start, deadline, 24*time.Hour, r.N)
	case RepeatWeekly:
		return stepPeriods(start, deadline, 7*24*time.Hour, r.N)
	case RepeatEveryXDays:
		return stepPeriods(start, deadline, time.Duration(r.N)*24*time.Hour, 1)
	case RepeatEveryXHours:
		return stepPeriods(start, deadline, time.Duration(r.N)*time.Hour, 1)
	default:
		return nil
	}
}

func stepPeriods(start, deadline time.Time, width time.Duration, instances int) []Period {
	if width <= 0 {
		width = time.Hour
	}
	if instances <= 0 {
		instances = 1
	}
	var periods []Period
	for cursor := start; cursor.Before(deadline); cursor = cursor.Add(width) {
		end := cursor.Add(width)
		if end.After(deadline) {
			end = deadline
		}
		periods = append(periods, Period{Start: cursor, End: end, Instances: instances})
	}
	return periods
}
