package taste

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pulseMontreal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInteractionRepo struct {
	byUser  map[string][]domain.UserEventInteraction
	userIDs []string
	failFor map[string]bool
}

func (f *fakeInteractionRepo) FindByUser(_ context.Context, userID string) ([]domain.UserEventInteraction, error) {
	if f.failFor[userID] {
		return nil, errors.New("interaction rows unreadable")
	}
	return f.byUser[userID], nil
}

func (f *fakeInteractionRepo) ActiveUserIDs(_ context.Context, _ time.Time) ([]string, error) {
	return f.userIDs, nil
}

type fakeFavoriteRepo struct {
	byUser map[string][]domain.Favorite
}

func (f *fakeFavoriteRepo) FindByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	return f.byUser[userID], nil
}

type fakeInterestTagRepo struct {
	byUser map[string][]domain.UserInterestTag
}

func (f *fakeInterestTagRepo) FindByUser(_ context.Context, userID string) ([]domain.UserInterestTag, error) {
	return f.byUser[userID], nil
}

type fakeEventTagRepo struct {
	byEvent map[string][]domain.EventTag
}

func (f *fakeEventTagRepo) FindByEventIDs(_ context.Context, eventIDs []string) (map[string][]domain.EventTag, error) {
	out := make(map[string][]domain.EventTag)
	for _, id := range eventIDs {
		if tags, ok := f.byEvent[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.TasteProfile
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, userID string) (*domain.TasteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) SaveProfile(_ context.Context, userID string, profile *domain.TasteProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profiles == nil {
		f.profiles = make(map[string]*domain.TasteProfile)
	}
	f.profiles[userID] = profile
	return nil
}

func newTasteFixture() (*Service, *fakeInteractionRepo, *fakeProfileRepo) {
	interactionRepo := &fakeInteractionRepo{
		byUser:  map[string][]domain.UserEventInteraction{},
		failFor: map[string]bool{},
	}
	favoriteRepo := &fakeFavoriteRepo{byUser: map[string][]domain.Favorite{}}
	interestRepo := &fakeInterestTagRepo{byUser: map[string][]domain.UserInterestTag{}}
	eventTagRepo := &fakeEventTagRepo{byEvent: map[string][]domain.EventTag{
		"e1": {{Category: "genre", Value: "techno"}},
		"e2": {{Category: "genre", Value: "jazz"}},
	}}
	profileRepo := &fakeProfileRepo{}

	svc := NewService(interactionRepo, favoriteRepo, interestRepo, eventTagRepo, profileRepo, DefaultConfig())
	return svc, interactionRepo, profileRepo
}

func TestBuildProfileAtIsIdempotent(t *testing.T) {
	svc, interactionRepo, _ := newTasteFixture()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	interactionRepo.byUser["u1"] = []domain.UserEventInteraction{
		{UserID: "u1", EventID: "e1", Type: domain.InteractionFavorite, OccurredAt: now.Add(-24 * time.Hour)},
		{UserID: "u1", EventID: "e2", Type: domain.InteractionView, OccurredAt: now.Add(-48 * time.Hour)},
	}

	first, err := svc.BuildProfileAt(context.Background(), "u1", now)
	require.NoError(t, err)

	second, err := svc.BuildProfileAt(context.Background(), "u1", now)
	require.NoError(t, err)

	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.SignalRows, second.SignalRows)
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	svc, _, _ := newTasteFixture()

	profile, err := svc.BuildProfile(context.Background(), "nobody")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.IsEmpty())
	assert.Equal(t, 0, profile.SignalRows)
}

func TestRebuildUserOverwritesStoredProfile(t *testing.T) {
	svc, interactionRepo, profileRepo := newTasteFixture()

	interactionRepo.byUser["u1"] = []domain.UserEventInteraction{
		{UserID: "u1", EventID: "e1", Type: domain.InteractionFavorite, OccurredAt: time.Now()},
	}

	profile, err := svc.RebuildUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Same(t, profile, profileRepo.profiles["u1"])

	// the whole history drains away; the next rebuild replaces, not merges
	interactionRepo.byUser["u1"] = nil

	profile, err = svc.RebuildUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, profile.IsEmpty())
	assert.True(t, profileRepo.profiles["u1"].IsEmpty())
}

func TestRebuildAllCountsFailuresWithoutAborting(t *testing.T) {
	svc, interactionRepo, profileRepo := newTasteFixture()

	for i := 0; i < 100; i++ {
		userID := fmt.Sprintf("u%03d", i)
		interactionRepo.userIDs = append(interactionRepo.userIDs, userID)
		interactionRepo.byUser[userID] = []domain.UserEventInteraction{
			{UserID: userID, EventID: "e1", Type: domain.InteractionClick, OccurredAt: time.Now()},
		}
	}
	interactionRepo.failFor["u013"] = true
	interactionRepo.failFor["u077"] = true

	summary, err := svc.RebuildAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 100, summary.Processed)
	assert.Equal(t, 98, summary.SuccessCount)
	assert.Equal(t, 2, summary.ErrorCount)

	assert.Len(t, profileRepo.profiles, 98)
	assert.NotContains(t, profileRepo.profiles, "u013")
	assert.NotContains(t, profileRepo.profiles, "u077")
}
