package domain

// ActivityStatus tracks an Activity's progress through the Placer's loop.
type ActivityStatus int

const (
	StatusUnprocessed ActivityStatus = iota
	StatusScheduled
	StatusImpossible
)

// Activity is one repetition instance of a Goal: a candidate block of
// TotalDuration hours to be placed somewhere within Overlay's claimed
// positions. Overlay is a claimed/unclaimed vector parallel to the owning
// Calendar's Hours: Overlay[i] is true where the Activity Generator placed a
// weak claim (the hour was compatible with the goal's filter, not_on, and
// pad bounds at generation time). The Placer's refresh step clears entries
// whose hour has since become Occupied or budget-inadmissible.
type Activity struct {
	ID            string
	GoalID        string
	Title         string
	TotalDuration int
	DurationLeft  int
	MinBlockSize  int
	MaxBlockSize  int
	Overlay       []bool
	Status        ActivityStatus
	Optional      bool
	Kind          ActivityKind
	PeriodStart   int // absolute hour index, for impossibility reporting
	PeriodEnd     int
}

// NewActivity constructs an Unprocessed Activity with the given overlay.
func NewActivity(id, goalID, title string, totalDuration, minBlockSize, maxBlockSize int, overlay []bool) Activity {
	return Activity{
		ID:            id,
		GoalID:        goalID,
		Title:         title,
		TotalDuration: totalDuration,
		DurationLeft:  totalDuration,
		MinBlockSize:  minBlockSize,
		MaxBlockSize:  maxBlockSize,
		Overlay:       overlay,
	}
}

// ReleaseClaim clears this activity's overlay claim on hour i and the
// corresponding live claim on the Calendar hour, if any.
func (a *Activity) ReleaseClaim(cal *Calendar, i int) {
	if i < 0 || i >= len(a.Overlay) {
		return
	}
	a.Overlay[i] = false
	if i < len(cal.Hours) {
		cal.Hours[i].ReleaseClaim(a.ID)
	}
}

// RefreshOverlay culls claimed positions whose hour has become Occupied
// since the last refresh. It is the Placer's step 1, run once per iteration
// for every Unprocessed activity.
func (a *Activity) RefreshOverlay(cal *Calendar) {
	for i, claimed := range a.Overlay {
		if !claimed {
			continue
		}
		if cal.Hours[i].Status == HourOccupied {
			a.ReleaseClaim(cal, i)
		}
	}
}

// Flex returns the number of positions i such that [i, i+MinBlockSize) is
// entirely within the overlay's still-claimed cells — the Placer's ordering
// key for which unprocessed activity to handle next.
func (a Activity) Flex() int {
	return a.countRuns(a.MinBlockSize)
}

func (a Activity) countRuns(window int) int {
	if window <= 0 {
		window = 1
	}
	count := 0
	for i := 0; i+window <= len(a.Overlay); i++ {
		if a.runIsClaimed(i, window) {
			count++
		}
	}
	return count
}

func (a Activity) runIsClaimed(start, length int) bool {
	for j := start; j < start+length; j++ {
		if !a.Overlay[j] {
			return false
		}
	}
	return true
}

// FindBestPosition scans the overlay left to right for the leftmost,
// fewest-conflict position that can hold TotalDuration contiguous claimed
// hours, short-circuiting as soon as a zero-conflict position is found.
// Conflicts at a position are the sum, over its hours, of the number of
// other activities' live claims on that hour.
func (a Activity) FindBestPosition(cal *Calendar) (pos int, conflicts int, found bool) {
	bestConflicts := -1
	for i := 0; i+a.TotalDuration <= len(a.Overlay); i++ {
		if !a.runIsClaimed(i, a.TotalDuration) {
			continue
		}
		c := 0
		for j := i; j < i+a.TotalDuration; j++ {
			c += cal.Hours[j].LiveClaimCount(a.ID)
		}
		if bestConflicts == -1 || c < bestConflicts {
			bestConflicts = c
			pos = i
			found = true
		}
		if bestConflicts == 0 {
			break
		}
	}
	return pos, bestConflicts, found
}

// LargestContiguousFreeRun returns the length, in hours, of the longest
// still-claimed run in the overlay. Used to compute hours_missing for an
// Activity that ends up Impossible: the shortfall is TotalDuration minus
// this run, not the full duration, since a partially-compatible window still
// offers some of what the goal asked for.
func (a Activity) LargestContiguousFreeRun() int {
	best, current := 0, 0
	for _, claimed := range a.Overlay {
		if claimed {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}
	}
	return best
}

// HoursMissing computes the shortfall reported for an Impossible activity:
// the total duration minus the longest contiguous run still claimed in its
// overlay when it is called, floored at zero.
func (a Activity) HoursMissing() int {
	missing := a.TotalDuration - a.LargestContiguousFreeRun()
	if missing < 0 {
		missing = 0
	}
	return missing
}

// Commit transitions the activity to Scheduled and occupies [pos,
// pos+TotalDuration) on the calendar with this activity's identity,
// updating intersecting budgets and releasing every activity's claim (via
// RefreshOverlay on their next turn) on the newly Occupied hours.
func (a *Activity) Commit(cal *Calendar, pos int) {
	for h := pos; h < pos+a.TotalDuration; h++ {
		cal.Hours[h].Status = HourOccupied
		cal.Hours[h].ActivityID = a.ID
		cal.Hours[h].ActivityTitle = a.Title
		cal.Hours[h].GoalID = a.GoalID
		cal.UpdateBudgetsFor(a.GoalID, h)
		a.ReleaseClaim(cal, h)
	}
	a.DurationLeft = 0
	a.Status = StatusScheduled
}

// MarkImpossible releases every remaining claim this activity holds and
// transitions it to Impossible.
func (a *Activity) MarkImpossible(cal *Calendar) {
	for i, claimed := range a.Overlay {
		if claimed {
			a.ReleaseClaim(cal, i)
		}
	}
	a.Status = StatusImpossible
}
