package trending

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pulseMontreal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInteractionRepo struct {
	interactions []domain.UserEventInteraction
	err          error
}

func (f *fakeInteractionRepo) FindSince(_ context.Context, since time.Time) ([]domain.UserEventInteraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.UserEventInteraction, 0, len(f.interactions))
	for _, interaction := range f.interactions {
		if !interaction.OccurredAt.Before(since) {
			out = append(out, interaction)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events []domain.Event
}

func (f *fakeEventRepo) FindBetween(_ context.Context, from, to time.Time) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(f.events))
	for _, event := range f.events {
		if event.StartsAt.Before(from) {
			continue
		}
		if !to.IsZero() && event.StartsAt.After(to) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

type fakeCache struct {
	entries map[string][]domain.TrendingEvent
	getErr  error
	gets    int
	sets    int
}

func (f *fakeCache) key(scope string, limit int) string {
	return fmt.Sprintf("%s:%d", scope, limit)
}

func (f *fakeCache) Get(_ context.Context, scope string, limit int) ([]domain.TrendingEvent, bool, error) {
	f.gets++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	entries, ok := f.entries[f.key(scope, limit)]
	return entries, ok, nil
}

func (f *fakeCache) Set(_ context.Context, scope string, limit int, entries []domain.TrendingEvent) error {
	f.sets++
	if f.entries == nil {
		f.entries = make(map[string][]domain.TrendingEvent)
	}
	f.entries[f.key(scope, limit)] = entries
	return nil
}

func eventsStartingSoon(now time.Time, ids ...string) []domain.Event {
	events := make([]domain.Event, 0, len(ids))
	for i, id := range ids {
		events = append(events, domain.Event{
			ID:       id,
			StartsAt: now.Add(time.Duration(i+1) * time.Hour),
			Status:   domain.EventStatusActive,
		})
	}
	return events
}

func interactionsFor(now time.Time, eventID, interactionType string, count int) []domain.UserEventInteraction {
	out := make([]domain.UserEventInteraction, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, domain.UserEventInteraction{
			EventID:    eventID,
			Type:       interactionType,
			OccurredAt: now.Add(-time.Duration(i+1) * time.Minute),
		})
	}
	return out
}

func TestGetTrendingRanksByWeightedCounts(t *testing.T) {
	now := time.Now()
	interactionRepo := &fakeInteractionRepo{}
	// e2 has more weighted engagement than e1 despite fewer rows:
	// 3 favorites (9.0) vs 5 views (5.0)
	interactionRepo.interactions = append(interactionRepo.interactions, interactionsFor(now, "e1", domain.InteractionView, 5)...)
	interactionRepo.interactions = append(interactionRepo.interactions, interactionsFor(now, "e2", domain.InteractionFavorite, 3)...)

	eventRepo := &fakeEventRepo{events: eventsStartingSoon(now, "e1", "e2")}
	svc := NewService(interactionRepo, eventRepo, nil, DefaultConfig())

	entries, err := svc.GetTrending(context.Background(), ScopeToday, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].EventID)
	assert.Equal(t, "e1", entries[1].EventID)
	assert.Greater(t, entries[0].Score, entries[1].Score)
}

func TestGetTrendingScoreIsMonotonicInEngagement(t *testing.T) {
	now := time.Now()
	interactionRepo := &fakeInteractionRepo{
		interactions: interactionsFor(now, "e1", domain.InteractionClick, 2),
	}
	eventRepo := &fakeEventRepo{events: eventsStartingSoon(now, "e1", "e2")}
	svc := NewService(interactionRepo, eventRepo, nil, DefaultConfig())

	before, err := svc.GetTrending(context.Background(), ScopeToday, 10)
	require.NoError(t, err)

	// adding engagement to e1 can only raise its score
	interactionRepo.interactions = append(interactionRepo.interactions,
		interactionsFor(now, "e1", domain.InteractionShare, 2)...)

	after, err := svc.GetTrending(context.Background(), ScopeToday, 10)
	require.NoError(t, err)

	assert.Equal(t, "e1", before[0].EventID)
	assert.Equal(t, "e1", after[0].EventID)
	assert.Greater(t, after[0].Score, before[0].Score)
}

func TestGetTrendingIgnoresDismiss(t *testing.T) {
	now := time.Now()
	interactionRepo := &fakeInteractionRepo{}
	interactionRepo.interactions = append(interactionRepo.interactions, interactionsFor(now, "e1", domain.InteractionDismiss, 50)...)
	interactionRepo.interactions = append(interactionRepo.interactions, interactionsFor(now, "e2", domain.InteractionView, 1)...)

	// e1 starts later, so its recency boost cannot outrank e2 either
	events := eventsStartingSoon(now, "e2", "e1")
	eventRepo := &fakeEventRepo{events: events}
	svc := NewService(interactionRepo, eventRepo, nil, DefaultConfig())

	entries, err := svc.GetTrending(context.Background(), ScopeToday, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].EventID)
}

func TestGetTrendingInvalidScope(t *testing.T) {
	svc := NewService(&fakeInteractionRepo{}, &fakeEventRepo{}, nil, DefaultConfig())

	_, err := svc.GetTrending(context.Background(), "fortnight", 10)

	assert.EqualError(t, err, "invalid trending scope")
}

func TestGetTrendingServesFromCache(t *testing.T) {
	now := time.Now()
	cache := &fakeCache{}
	interactionRepo := &fakeInteractionRepo{
		interactions: interactionsFor(now, "e1", domain.InteractionView, 3),
	}
	eventRepo := &fakeEventRepo{events: eventsStartingSoon(now, "e1")}
	svc := NewService(interactionRepo, eventRepo, cache, DefaultConfig())

	first, err := svc.GetTrending(context.Background(), ScopeToday, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// new interactions are invisible until the cache entry expires
	interactionRepo.interactions = append(interactionRepo.interactions,
		interactionsFor(now, "e1", domain.InteractionFavorite, 10)...)

	second, err := svc.GetTrending(context.Background(), ScopeToday, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestGetTrendingRecomputesOnCacheError(t *testing.T) {
	now := time.Now()
	cache := &fakeCache{getErr: errors.New("connection refused")}
	interactionRepo := &fakeInteractionRepo{
		interactions: interactionsFor(now, "e1", domain.InteractionView, 3),
	}
	eventRepo := &fakeEventRepo{events: eventsStartingSoon(now, "e1")}
	svc := NewService(interactionRepo, eventRepo, cache, DefaultConfig())

	entries, err := svc.GetTrending(context.Background(), ScopeToday, 5)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].EventID)
}

func TestGetTrendingDataErrorFailsRequest(t *testing.T) {
	interactionRepo := &fakeInteractionRepo{err: errors.New("db down")}
	svc := NewService(interactionRepo, &fakeEventRepo{}, nil, DefaultConfig())

	_, err := svc.GetTrending(context.Background(), ScopeWeek, 5)

	assert.ErrorContains(t, err, "load interactions")
}

func TestGetTrendingTruncatesToLimit(t *testing.T) {
	now := time.Now()
	eventRepo := &fakeEventRepo{events: eventsStartingSoon(now, "e1", "e2", "e3", "e4", "e5")}
	svc := NewService(&fakeInteractionRepo{}, eventRepo, nil, DefaultConfig())

	entries, err := svc.GetTrending(context.Background(), ScopeWeek, 3)

	require.NoError(t, err)
	assert.Len(t, entries, 3)
	// zero engagement everywhere: the sooner start wins on the recency boost
	assert.Equal(t, "e1", entries[0].EventID)
}
