package application

import (
	"fmt"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
)

var wireToWeekday = map[string]domain.Weekday{
	"Mon": domain.Monday,
	"Tue": domain.Tuesday,
	"Wed": domain.Wednesday,
	"Thu": domain.Thursday,
	"Fri": domain.Friday,
	"Sat": domain.Saturday,
	"Sun": domain.Sunday,
}

func parseWeekdays(days []string) ([]domain.Weekday, error) {
	if len(days) == 0 {
		return nil, nil
	}
	out := make([]domain.Weekday, 0, len(days))
	for _, d := range days {
		wd, ok := wireToWeekday[d]
		if !ok {
			return nil, fmt.Errorf("unrecognised weekday %q", d)
		}
		out = append(out, wd)
	}
	return out, nil
}
