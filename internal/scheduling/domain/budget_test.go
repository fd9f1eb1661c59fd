package domain_test

import (
	"testing"
	"time"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewTimeBudget_NoMinNoMax(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := domain.NewTimeBudget(domain.WindowDay, start, start.Add(24*time.Hour), nil, nil)

	assert.Equal(t, 0, tb.MinScheduled)
	assert.Equal(t, domain.Unbounded, tb.MaxScheduled)
	assert.True(t, tb.Admits(domain.KindSimple, 100))
}

func TestTimeBudget_EffectiveCap(t *testing.T) {
	min := 2 * time.Hour
	max := 5 * time.Hour
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	day := domain.NewTimeBudget(domain.WindowDay, start, start.Add(24*time.Hour), &min, &max)
	assert.Equal(t, 2, day.EffectiveCap(domain.KindBudget))
	assert.Equal(t, 5, day.EffectiveCap(domain.KindGetToMinWeekBudget))
	assert.Equal(t, 5, day.EffectiveCap(domain.KindTopUpWeekBudget))

	week := domain.NewTimeBudget(domain.WindowWeek, start, start.Add(7*24*time.Hour), &min, &max)
	assert.Equal(t, 2, week.EffectiveCap(domain.KindGetToMinWeekBudget))
}

func TestTimeBudget_Admits(t *testing.T) {
	min := time.Hour
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := domain.NewTimeBudget(domain.WindowDay, start, start.Add(24*time.Hour), &min, nil)

	assert.True(t, tb.Admits(domain.KindBudget, 1))
	tb.Scheduled = 1
	assert.False(t, tb.Admits(domain.KindBudget, 1))
}

func TestBudget_Participates(t *testing.T) {
	b := domain.NewBudget("parent", []string{"parent", "child"})
	assert.True(t, b.Participates("parent"))
	assert.True(t, b.Participates("child"))
	assert.False(t, b.Participates("stranger"))
}

func TestBudget_IntersectingAdmits(t *testing.T) {
	min := time.Hour
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := domain.NewBudget("g", []string{"g"})
	b.TimeBudgets = append(b.TimeBudgets, domain.NewTimeBudget(domain.WindowDay, start, start.Add(24*time.Hour), &min, nil))

	assert.True(t, b.IntersectingAdmits(domain.KindBudget, start.Add(time.Hour), 1))

	b.TimeBudgets[0].Scheduled = 1
	assert.False(t, b.IntersectingAdmits(domain.KindBudget, start.Add(time.Hour), 1))
	assert.True(t, b.IntersectingAdmits(domain.KindBudget, start.Add(30*time.Hour), 1), "outside every window, vacuously admitted")
}
