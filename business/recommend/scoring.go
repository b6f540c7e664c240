package recommend

import (
	"time"

	"pulseMontreal/domain"
)

// Config weights the composite score. Tunable, with named defaults.
type Config struct {
	WTaste    float64
	WTrending float64
	WRecency  float64

	// how many trending entries to pull for the popularity component
	TrendingPoolSize int
}

const (
	defaultWTaste    = 0.5
	defaultWTrending = 0.3
	defaultWRecency  = 0.2

	defaultTrendingPoolSize = 100
)

func DefaultConfig() Config {
	return Config{
		WTaste:           defaultWTaste,
		WTrending:        defaultWTrending,
		WRecency:         defaultWRecency,
		TrendingPoolSize: defaultTrendingPoolSize,
	}
}

// components keeps the weighted contribution of each score term so reasons
// can reference exactly the terms that were strictly positive.
type components struct {
	taste    float64
	trending float64
	recency  float64

	// the (category, value) pair that contributed most to the taste term
	topTagCategory string
	topTagValue    string
}

func (c components) total() float64 {
	return c.taste + c.trending + c.recency
}

// scoreEvent computes one candidate's composite score. Both the ranked list
// and the single-event explain path go through here, so the two can never
// drift for the same inputs.
func scoreEvent(
	cfg Config,
	profile *domain.TasteProfile,
	tags []domain.EventTag,
	trendingIndex map[string]float64,
	event domain.Event,
	now time.Time,
) components {

	var c components

	// taste match: profile-weighted overlap with the event's tags,
	// normalized by tag count so heavily tagged events get no free lift
	if len(tags) > 0 {
		sum := 0.0
		best := 0.0
		for _, tag := range tags {
			w := profile.Weight(tag.Category, tag.Value)
			sum += w
			if w > best {
				best = w
				c.topTagCategory = tag.Category
				c.topTagValue = tag.Value
			}
		}
		c.taste = cfg.WTaste * (sum / float64(len(tags)))
	}

	c.trending = cfg.WTrending * trendingIndex[event.ID]

	hoursUntil := event.StartsAt.Sub(now).Hours()
	if hoursUntil < 0 {
		hoursUntil = 0
	}
	c.recency = cfg.WRecency * (1.0 / (1.0 + hoursUntil/24.0))

	return c
}

// normalizeTrending converts raw trending scores into a [0,1] index by the
// maximum of the pool.
func normalizeTrending(entries []domain.TrendingEvent) map[string]float64 {
	index := make(map[string]float64, len(entries))

	maxScore := 0.0
	for _, entry := range entries {
		if entry.Score > maxScore {
			maxScore = entry.Score
		}
	}
	if maxScore == 0 {
		return index
	}

	for _, entry := range entries {
		index[entry.EventID] = entry.Score / maxScore
	}

	return index
}
