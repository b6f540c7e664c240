package trending

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"
)

// Config holds the interaction weighting used for popularity counting.
// FAVORITE and SHARE count more than a passing VIEW.
type Config struct {
	WeightView     float64
	WeightClick    float64
	WeightFavorite float64
	WeightShare    float64

	// small boost for events starting sooner
	RecencyBoostWeight float64
}

const (
	defaultWeightView     = 1.0
	defaultWeightClick    = 1.5
	defaultWeightFavorite = 3.0
	defaultWeightShare    = 2.5

	defaultRecencyBoostWeight = 0.5
)

func DefaultConfig() Config {
	return Config{
		WeightView:         defaultWeightView,
		WeightClick:        defaultWeightClick,
		WeightFavorite:     defaultWeightFavorite,
		WeightShare:        defaultWeightShare,
		RecencyBoostWeight: defaultRecencyBoostWeight,
	}
}

func (c Config) interactionWeight(interactionType string) float64 {
	switch interactionType {
	case domain.InteractionView:
		return c.WeightView
	case domain.InteractionClick:
		return c.WeightClick
	case domain.InteractionFavorite:
		return c.WeightFavorite
	case domain.InteractionShare:
		return c.WeightShare
	default:
		// DISMISS and unknown types carry no popularity
		return 0
	}
}

// ---- Repository interfaces ----

type InteractionRepository interface {
	FindSince(ctx context.Context, since time.Time) ([]domain.UserEventInteraction, error)
}

type EventRepository interface {
	FindBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

// Cache is the short-TTL store for computed rankings.
type Cache interface {
	Get(ctx context.Context, scope string, limit int) ([]domain.TrendingEvent, bool, error)
	Set(ctx context.Context, scope string, limit int, entries []domain.TrendingEvent) error
}

// ---- Service ----

type Service struct {
	interactionRepo InteractionRepository
	eventRepo       EventRepository
	cache           Cache
	cfg             Config
}

func NewService(
	interactionRepo InteractionRepository,
	eventRepo EventRepository,
	cache Cache,
	cfg Config,
) *Service {
	return &Service{
		interactionRepo: interactionRepo,
		eventRepo:       eventRepo,
		cache:           cache,
		cfg:             cfg,
	}
}

const defaultLimit = 20

// GetTrending ranks the scope's events by weighted recent interaction counts
// plus a small boost for events starting sooner. Upstream data errors fail
// the whole request; a partial trending list is not meaningful.
func (s *Service) GetTrending(ctx context.Context, scope string, limit int) ([]domain.TrendingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !ValidScope(scope) {
		return nil, errors.New("invalid trending scope")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.cache != nil {
		entries, hit, err := s.cache.Get(ctx, scope, limit)
		if err != nil {
			// cache trouble is not a request failure
			metrics.TrendingCacheLookups.WithLabelValues("error").Inc()
			logger.Warn("trending cache read failed", "scope", scope, "error", err)
		} else if hit {
			metrics.TrendingCacheLookups.WithLabelValues("hit").Inc()
			return entries, nil
		} else {
			metrics.TrendingCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	entries, err := s.compute(ctx, scope, limit, time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, limit, entries); err != nil {
			logger.Warn("trending cache write failed", "scope", scope, "error", err)
		}
	}

	return entries, nil
}

func (s *Service) compute(ctx context.Context, scope string, limit int, now time.Time) ([]domain.TrendingEvent, error) {
	interactions, err := s.interactionRepo.FindSince(ctx, InteractionWindowStart(scope, now))
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	counts := make(map[string]float64)
	for _, interaction := range interactions {
		if w := s.cfg.interactionWeight(interaction.Type); w > 0 {
			counts[interaction.EventID] += w
		}
	}

	from, to := EventWindow(scope, now)
	events, err := s.eventRepo.FindBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	type scored struct {
		eventID  string
		score    float64
		startsAt time.Time
	}

	scoredList := make([]scored, 0, len(events))
	for _, event := range events {
		score := counts[event.ID] + s.cfg.RecencyBoostWeight*recencyBoost(event.StartsAt, now)
		scoredList = append(scoredList, scored{
			eventID:  event.ID,
			score:    score,
			startsAt: event.StartsAt,
		})
	}

	sort.SliceStable(scoredList, func(i, j int) bool {
		if scoredList[i].score == scoredList[j].score {
			return scoredList[i].startsAt.Before(scoredList[j].startsAt)
		}
		return scoredList[i].score > scoredList[j].score
	})

	if len(scoredList) > limit {
		scoredList = scoredList[:limit]
	}

	out := make([]domain.TrendingEvent, 0, len(scoredList))
	for _, entry := range scoredList {
		out = append(out, domain.TrendingEvent{
			EventID: entry.eventID,
			Score:   entry.score,
		})
	}

	return out, nil
}

// recencyBoost is 1.0 for an event starting now and falls off as the start
// moves further out.
func recencyBoost(startsAt, now time.Time) float64 {
	hoursUntil := startsAt.Sub(now).Hours()
	if hoursUntil < 0 {
		hoursUntil = 0
	}
	return 1.0 / (1.0 + hoursUntil/24.0)
}
