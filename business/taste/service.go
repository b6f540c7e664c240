package taste

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// ---- Repository interfaces ----

type InteractionRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.UserEventInteraction, error)
	ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

type FavoriteRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type InterestTagRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.UserInterestTag, error)
}

type EventTagRepository interface {
	FindByEventIDs(ctx context.Context, eventIDs []string) (map[string][]domain.EventTag, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	SaveProfile(ctx context.Context, userID string, profile *domain.TasteProfile) error
}

// ---- Service ----

type Service struct {
	interactionRepo InteractionRepository
	favoriteRepo    FavoriteRepository
	interestRepo    InterestTagRepository
	eventTagRepo    EventTagRepository
	profileRepo     ProfileRepository
	cfg             Config
}

func NewService(
	interactionRepo InteractionRepository,
	favoriteRepo FavoriteRepository,
	interestRepo InterestTagRepository,
	eventTagRepo EventTagRepository,
	profileRepo ProfileRepository,
	cfg Config,
) *Service {
	return &Service{
		interactionRepo: interactionRepo,
		favoriteRepo:    favoriteRepo,
		interestRepo:    interestRepo,
		eventTagRepo:    eventTagRepo,
		profileRepo:     profileRepo,
		cfg:             cfg,
	}
}

// BuildProfile computes the taste profile from the user's own history. A
// user with no history gets an empty profile, not an error.
func (s *Service) BuildProfile(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	return s.BuildProfileAt(ctx, userID, time.Now())
}

// BuildProfileAt is BuildProfile with an explicit reference time for the
// recency decay, which makes the computation reproducible.
func (s *Service) BuildProfileAt(ctx context.Context, userID string, now time.Time) (*domain.TasteProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	favorites, err := s.favoriteRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	interestTags, err := s.interestRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interest tags: %w", err)
	}

	eventIDs := make([]string, 0, len(interactions)+len(favorites))
	seen := make(map[string]struct{})
	for _, interaction := range interactions {
		if _, ok := seen[interaction.EventID]; !ok {
			seen[interaction.EventID] = struct{}{}
			eventIDs = append(eventIDs, interaction.EventID)
		}
	}
	for _, favorite := range favorites {
		if _, ok := seen[favorite.EventID]; !ok {
			seen[favorite.EventID] = struct{}{}
			eventIDs = append(eventIDs, favorite.EventID)
		}
	}

	tagsByEvent, err := s.eventTagRepo.FindByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("load event tags: %w", err)
	}

	weights := buildWeights(s.cfg, now, interactions, favorites, interestTags, tagsByEvent)

	return &domain.TasteProfile{
		UserID:     userID,
		Weights:    weights,
		BuiltAt:    now,
		SignalRows: len(interactions) + len(favorites) + len(interestTags),
	}, nil
}

// RebuildUser recomputes and overwrites the stored profile for one user.
// Last writer wins on concurrent rebuilds; the profile is just a cache.
func (s *Service) RebuildUser(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	profile, err := s.BuildProfile(ctx, userID)
	if err != nil {
		metrics.ProfileRebuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := s.profileRepo.SaveProfile(ctx, userID, profile); err != nil {
		metrics.ProfileRebuildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save profile: %w", err)
	}

	metrics.ProfileRebuildsTotal.WithLabelValues("success").Inc()

	return profile, nil
}

// BatchSummary is what the periodic trigger gets back: counts only, no
// per-user detail.
type BatchSummary struct {
	Processed    int `json:"processed"`
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

// RebuildAll recomputes profiles for every user active within the trailing
// window. Per-user failures are counted, never abort the batch.
func (s *Service) RebuildAll(ctx context.Context) (BatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return BatchSummary{}, fmt.Errorf("context error: %w", err)
	}

	since := time.Now().AddDate(0, 0, -s.cfg.ActiveWindowDays)

	userIDs, err := s.interactionRepo.ActiveUserIDs(ctx, since)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("load active users: %w", err)
	}

	var successes, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	concurrency := s.cfg.RebuildConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			if _, err := s.RebuildUser(gctx, userID); err != nil {
				failures.Add(1)
				logger.Warn("taste profile rebuild failed", "user_id", userID, "error", err)
				// isolated per user; the batch keeps going
				return nil
			}
			successes.Add(1)
			return nil
		})
	}

	_ = g.Wait()

	summary := BatchSummary{
		Processed:    len(userIDs),
		SuccessCount: int(successes.Load()),
		ErrorCount:   int(failures.Load()),
	}

	logger.Info("taste profile batch rebuild finished",
		"processed", summary.Processed,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount,
	)

	return summary, nil
}
