package recommend

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pulseMontreal/business/trending"
)

// Scope values for recommendation queries. Unlike trending, "all" is allowed
// and means any future event.
const (
	ScopeToday   = trending.ScopeToday
	ScopeWeekend = trending.ScopeWeekend
	ScopeAll     = "all"
)

const (
	defaultLimit    = 20
	maxLimit        = 100
	defaultMinScore = 0.05
)

// Options enumerates every recognized recommendation option. Construct it
// with NewOptions so malformed values are rejected before any computation.
type Options struct {
	Limit    int
	Genre    string
	Style    string
	Scope    string
	MinScore float64
}

// NewOptions validates and normalizes raw query values. minScore < 0 passes
// through as "use the default".
func NewOptions(limit int, genre, style, scope string, minScore float64) (Options, error) {
	if limit < 0 {
		return Options{}, errors.New("limit cannot be negative")
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		scope = ScopeAll
	}
	switch scope {
	case ScopeToday, ScopeWeekend, ScopeAll:
	default:
		return Options{}, fmt.Errorf("unrecognized scope %q", scope)
	}

	if minScore < 0 {
		minScore = defaultMinScore
	}
	if minScore > 1 {
		return Options{}, errors.New("min score cannot exceed 1")
	}

	return Options{
		Limit:    limit,
		Genre:    strings.ToLower(strings.TrimSpace(genre)),
		Style:    strings.ToLower(strings.TrimSpace(style)),
		Scope:    scope,
		MinScore: minScore,
	}, nil
}

// trendingScope maps a recommendation scope onto the trending engine's
// windows; "all" falls back to the weekly window.
func trendingScope(scope string) string {
	if scope == ScopeAll {
		return trending.ScopeWeek
	}
	return scope
}

// candidateWindow returns the start-time range candidates must fall into.
// The zero "to" time means unbounded.
func candidateWindow(scope string, now time.Time) (time.Time, time.Time) {
	if scope == ScopeAll {
		return now, time.Time{}
	}
	return trending.EventWindow(scope, now)
}
