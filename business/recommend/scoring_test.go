package recommend

import (
	"testing"
	"time"

	"pulseMontreal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func technoProfile() *domain.TasteProfile {
	return &domain.TasteProfile{
		UserID: "u1",
		Weights: domain.ProfileWeights{
			"genre": {"techno": 1.0, "jazz": 0.2},
			"style": {"underground": 0.6},
		},
	}
}

func TestScoreEventTasteTerm(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	event := domain.Event{ID: "e1", StartsAt: now.Add(48 * time.Hour)}

	tags := []domain.EventTag{
		{Category: "genre", Value: "techno"},
		{Category: "style", Value: "underground"},
	}

	comps := scoreEvent(cfg, technoProfile(), tags, nil, event, now)

	// mean profile weight over the event's tags, scaled by WTaste
	assert.InDelta(t, cfg.WTaste*(1.0+0.6)/2, comps.taste, 1e-9)
	assert.Equal(t, "genre", comps.topTagCategory)
	assert.Equal(t, "techno", comps.topTagValue)
}

func TestScoreEventTagCountGivesNoFreeLift(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	event := domain.Event{ID: "e1", StartsAt: now.Add(48 * time.Hour)}

	matched := []domain.EventTag{{Category: "genre", Value: "techno"}}
	padded := append(matched,
		domain.EventTag{Category: "ambiance", Value: "loud"},
		domain.EventTag{Category: "public", Value: "adults"},
	)

	focused := scoreEvent(cfg, technoProfile(), matched, nil, event, now)
	diluted := scoreEvent(cfg, technoProfile(), padded, nil, event, now)

	assert.Greater(t, focused.taste, diluted.taste)
}

func TestScoreEventNilProfileHasZeroTaste(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	event := domain.Event{ID: "e1", StartsAt: now.Add(time.Hour)}
	tags := []domain.EventTag{{Category: "genre", Value: "techno"}}

	comps := scoreEvent(cfg, nil, tags, nil, event, now)

	assert.Equal(t, 0.0, comps.taste)
	assert.Greater(t, comps.recency, 0.0)
}

func TestScoreEventRecencyFallsOffWithDistance(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	soon := scoreEvent(cfg, nil, nil, nil, domain.Event{ID: "e1", StartsAt: now.Add(2 * time.Hour)}, now)
	far := scoreEvent(cfg, nil, nil, nil, domain.Event{ID: "e2", StartsAt: now.Add(10 * 24 * time.Hour)}, now)

	assert.Greater(t, soon.recency, far.recency)

	// an event starting right now maxes the term out
	immediate := scoreEvent(cfg, nil, nil, nil, domain.Event{ID: "e3", StartsAt: now}, now)
	assert.InDelta(t, cfg.WRecency, immediate.recency, 1e-9)
}

func TestScoreEventTrendingTerm(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	index := map[string]float64{"e1": 1.0, "e2": 0.25}

	hot := scoreEvent(cfg, nil, nil, index, domain.Event{ID: "e1", StartsAt: now.Add(time.Hour)}, now)
	warm := scoreEvent(cfg, nil, nil, index, domain.Event{ID: "e2", StartsAt: now.Add(time.Hour)}, now)
	cold := scoreEvent(cfg, nil, nil, index, domain.Event{ID: "e9", StartsAt: now.Add(time.Hour)}, now)

	assert.InDelta(t, cfg.WTrending, hot.trending, 1e-9)
	assert.InDelta(t, cfg.WTrending*0.25, warm.trending, 1e-9)
	assert.Equal(t, 0.0, cold.trending)
}

func TestNormalizeTrending(t *testing.T) {
	index := normalizeTrending([]domain.TrendingEvent{
		{EventID: "e1", Score: 8},
		{EventID: "e2", Score: 2},
	})

	require.Len(t, index, 2)
	assert.Equal(t, 1.0, index["e1"])
	assert.Equal(t, 0.25, index["e2"])

	assert.Empty(t, normalizeTrending(nil))
	assert.Empty(t, normalizeTrending([]domain.TrendingEvent{{EventID: "e1", Score: 0}}))
}

func TestReasonsOnlyFromPositiveComponents(t *testing.T) {
	all := components{taste: 0.3, trending: 0.2, recency: 0.1, topTagCategory: "genre", topTagValue: "techno"}
	assert.Equal(t, []string{
		"matches your interest in techno",
		"popular today",
		"coming up soon",
	}, reasonsFor(all, ScopeToday))

	noTaste := components{trending: 0.2, recency: 0.1}
	assert.Equal(t, []string{
		"popular this weekend",
		"coming up soon",
	}, reasonsFor(noTaste, ScopeWeekend))

	onlyRecency := components{recency: 0.1}
	assert.Equal(t, []string{"coming up soon"}, reasonsFor(onlyRecency, ScopeAll))

	assert.Empty(t, reasonsFor(components{}, ScopeAll))
}

func TestScopeLabel(t *testing.T) {
	assert.Equal(t, "today", scopeLabel(ScopeToday))
	assert.Equal(t, "this weekend", scopeLabel(ScopeWeekend))
	assert.Equal(t, "this week", scopeLabel(ScopeAll))
}
