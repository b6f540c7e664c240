package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts, err := NewOptions(0, "", "", "", -1)

	require.NoError(t, err)
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, ScopeAll, opts.Scope)
	assert.Equal(t, 0.05, opts.MinScore)
}

func TestNewOptionsCapsLimit(t *testing.T) {
	opts, err := NewOptions(5000, "", "", "today", 0)

	require.NoError(t, err)
	assert.Equal(t, 100, opts.Limit)
}

func TestNewOptionsRejectsNegativeLimit(t *testing.T) {
	_, err := NewOptions(-1, "", "", "", 0)

	assert.EqualError(t, err, "limit cannot be negative")
}

func TestNewOptionsRejectsUnknownScope(t *testing.T) {
	_, err := NewOptions(10, "", "", "next-month", 0)

	assert.ErrorContains(t, err, "unrecognized scope")
}

func TestNewOptionsRejectsMinScoreAboveOne(t *testing.T) {
	_, err := NewOptions(10, "", "", "", 1.5)

	assert.EqualError(t, err, "min score cannot exceed 1")
}

func TestNewOptionsNormalizesFilters(t *testing.T) {
	opts, err := NewOptions(10, "  Techno ", "Underground", " WEEKEND ", 0.1)

	require.NoError(t, err)
	assert.Equal(t, "techno", opts.Genre)
	assert.Equal(t, "underground", opts.Style)
	assert.Equal(t, ScopeWeekend, opts.Scope)
	assert.Equal(t, 0.1, opts.MinScore)
}

func TestTrendingScopeMapping(t *testing.T) {
	assert.Equal(t, "week", trendingScope(ScopeAll))
	assert.Equal(t, "today", trendingScope(ScopeToday))
	assert.Equal(t, "weekend", trendingScope(ScopeWeekend))
}
