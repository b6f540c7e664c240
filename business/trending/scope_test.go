package trending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidScope(t *testing.T) {
	assert.True(t, ValidScope(ScopeToday))
	assert.True(t, ValidScope(ScopeWeekend))
	assert.True(t, ValidScope(ScopeWeek))
	assert.False(t, ValidScope("all"))
	assert.False(t, ValidScope(""))
}

func TestInteractionWindowStart(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-24*time.Hour), InteractionWindowStart(ScopeToday, now))
	assert.Equal(t, now.Add(-72*time.Hour), InteractionWindowStart(ScopeWeekend, now))
	assert.Equal(t, now.Add(-7*24*time.Hour), InteractionWindowStart(ScopeWeek, now))
}

func TestEventWindowToday(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)

	from, to := EventWindow(ScopeToday, now)

	assert.Equal(t, now, from)
	assert.Equal(t, time.Date(2026, 6, 10, 23, 59, 59, 0, time.UTC), to)
}

func TestEventWindowWeek(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)

	from, to := EventWindow(ScopeWeek, now)

	assert.Equal(t, now, from)
	assert.Equal(t, now.Add(7*24*time.Hour), to)
}

func TestEventWindowWeekendFromMidweek(t *testing.T) {
	// Wednesday 2026-06-10
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

	from, to := EventWindow(ScopeWeekend, now)

	// upcoming Friday through end of Sunday
	assert.Equal(t, time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), to)
}

func TestEventWindowWeekendMidWeekend(t *testing.T) {
	// Saturday 2026-06-13: the running weekend, starting from now
	now := time.Date(2026, 6, 13, 20, 0, 0, 0, time.UTC)

	from, to := EventWindow(ScopeWeekend, now)

	assert.Equal(t, now, from)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), to)
}

func TestEventWindowWeekendOnFriday(t *testing.T) {
	// Friday 2026-06-12 evening: weekend already underway
	now := time.Date(2026, 6, 12, 19, 0, 0, 0, time.UTC)

	from, to := EventWindow(ScopeWeekend, now)

	assert.Equal(t, now, from)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), to)
}
