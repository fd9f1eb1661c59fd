package domain_test

import (
	"testing"

	"github.com/ardenhale/timeloom/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter_RejectsOutOfRangeHours(t *testing.T) {
	_, err := domain.NewFilter(-1, 10, nil)
	require.ErrorIs(t, err, domain.ErrInvalidFilterHour)

	_, err = domain.NewFilter(0, 25, nil)
	require.ErrorIs(t, err, domain.ErrInvalidFilterHour)
}

func TestFilter_AllowsHour_NoWindow(t *testing.T) {
	f := domain.NoFilter
	for h := 0; h < 24; h++ {
		assert.True(t, f.AllowsHour(h))
	}
}

func TestFilter_AllowsHour_Ordinary(t *testing.T) {
	f, err := domain.NewFilter(9, 17, nil)
	require.NoError(t, err)

	assert.True(t, f.AllowsHour(9))
	assert.True(t, f.AllowsHour(16))
	assert.False(t, f.AllowsHour(17))
	assert.False(t, f.AllowsHour(8))
}

func TestFilter_AllowsHour_WrapsPastMidnight(t *testing.T) {
	f, err := domain.NewFilter(22, 8, nil)
	require.NoError(t, err)

	assert.True(t, f.AllowsHour(22))
	assert.True(t, f.AllowsHour(23))
	assert.True(t, f.AllowsHour(0))
	assert.True(t, f.AllowsHour(7))
	assert.False(t, f.AllowsHour(8))
	assert.False(t, f.AllowsHour(21))
}

func TestFilter_AllowsDay(t *testing.T) {
	f, err := domain.NewFilter(0, 0, domain.Weekends)
	require.NoError(t, err)

	assert.True(t, f.AllowsDay(domain.Saturday))
	assert.False(t, f.AllowsDay(domain.Monday))
}

func TestFilter_WithImpliedOnDays_ExplicitWins(t *testing.T) {
	f, err := domain.NewFilter(0, 0, []domain.Weekday{domain.Friday})
	require.NoError(t, err)

	merged := f.WithImpliedOnDays(domain.Weekends)
	assert.Equal(t, []domain.Weekday{domain.Friday}, merged.OnDays)
}

func TestFilter_WithImpliedOnDays_AppliesWhenAbsent(t *testing.T) {
	merged := domain.NoFilter.WithImpliedOnDays(domain.Weekends)
	assert.Equal(t, domain.Weekends, merged.OnDays)
}

func TestFilter_WindowHours(t *testing.T) {
	assert.Equal(t, 24, domain.NoFilter.WindowHours())

	f, err := domain.NewFilter(9, 17, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, f.WindowHours())

	wrap, err := domain.NewFilter(22, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, wrap.WindowHours())
}
