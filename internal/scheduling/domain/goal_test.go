package domain_test

import (
	"testing"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayRange() (time.Time, time.Time) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func TestNewGoal_RejectsBadDeadline(t *testing.T) {
	start, deadline := dayRange()
	_, err := domain.NewGoal("g1", "dentist", time.Hour, deadline, start, domain.NoFilter)
	assert.Error(t, err)
}

func TestNewGoal_RejectsNonPositiveDuration(t *testing.T) {
	start, deadline := dayRange()
	_, err := domain.NewGoal("g1", "dentist", 0, start, deadline, domain.NoFilter)
	assert.Error(t, err)
}

func TestNewGoal_DefaultBlockSize(t *testing.T) {
	start, deadline := dayRange()
	g, err := domain.NewGoal("g1", "exercise", 2*time.Hour, start, deadline, domain.NoFilter)
	require.NoError(t, err)
	assert.Equal(t, 1, g.MinBlockSize)
	assert.Equal(t, 2, g.MaxBlockSize)
}

func TestGoal_WithBlockSize_DegradesAboveEight(t *testing.T) {
	start, deadline := dayRange()
	g, err := domain.NewGoal("g1", "study", 10*time.Hour, start, deadline, domain.NoFilter)
	require.NoError(t, err)

	g = g.WithBlockSize(9, 10)
	assert.Equal(t, 1, g.MinBlockSize, "min_block_size above 8 is forced to 1")
	assert.Equal(t, 10, g.MaxBlockSize)
}

func TestGoal_IsLeaf(t *testing.T) {
	start, deadline := dayRange()
	g, err := domain.NewGoal("g1", "parent", time.Hour, start, deadline, domain.NoFilter)
	require.NoError(t, err)
	assert.True(t, g.IsLeaf())

	g.ChildIDs = []string{"g2"}
	assert.False(t, g.IsLeaf())
}

func TestGoal_IsOccupiedAt(t *testing.T) {
	start, deadline := dayRange()
	g, err := domain.NewGoal("g1", "shopping", time.Hour, start, deadline, domain.NoFilter)
	require.NoError(t, err)

	blockStart := start.Add(5 * time.Hour)
	blockEnd := blockStart.Add(2 * time.Hour)
	g.NotOn = []domain.NotOnSlot{{Start: blockStart, End: blockEnd}}

	assert.True(t, g.IsOccupiedAt(blockStart))
	assert.True(t, g.IsOccupiedAt(blockStart.Add(time.Hour)))
	assert.False(t, g.IsOccupiedAt(blockEnd))
	assert.False(t, g.IsOccupiedAt(start))
}

func TestBudgetConfig_Validate_DayExceedsWeek(t *testing.T) {
	minPerDay := 2 * time.Hour
	cfg := domain.BudgetConfig{
		MinPerDay:   &minPerDay,
		MinPerWeek:  5 * time.Hour,
		AllowedDays: domain.Weekdays,
	}
	require.ErrorIs(t, cfg.Validate(), domain.ErrBudgetDayExceedsWeek)
}

func TestBudgetConfig_Validate_MaxDayExceedsMaxWeek(t *testing.T) {
	maxPerDay := 10 * time.Hour
	maxPerWeek := 8 * time.Hour
	cfg := domain.BudgetConfig{MaxPerDay: &maxPerDay, MaxPerWeek: &maxPerWeek}
	require.ErrorIs(t, cfg.Validate(), domain.ErrBudgetMaxDayExceedsMaxWeek)
}

func TestBudgetConfig_Validate_Ok(t *testing.T) {
	minPerDay := time.Hour
	cfg := domain.BudgetConfig{
		MinPerDay:   &minPerDay,
		MinPerWeek:  5 * time.Hour,
		AllowedDays: domain.Weekdays,
	}
	assert.NoError(t, cfg.Validate())
}
