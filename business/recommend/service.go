package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"
)

// ---- Repository interfaces ----

type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type EventRepository interface {
	FindByID(ctx context.Context, id string) (domain.Event, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Event, error)
	FindCandidates(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}

type EventTagRepository interface {
	FindByEventIDs(ctx context.Context, eventIDs []string) (map[string][]domain.EventTag, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
}

type TrendingProvider interface {
	GetTrending(ctx context.Context, scope string, limit int) ([]domain.TrendingEvent, error)
}

// ---- Service ----

type Service struct {
	userRepo    UserRepository
	eventRepo   EventRepository
	tagRepo     EventTagRepository
	profileRepo ProfileRepository
	trendingSvc TrendingProvider
	cfg         Config
}

func NewService(
	userRepo UserRepository,
	eventRepo EventRepository,
	tagRepo EventTagRepository,
	profileRepo ProfileRepository,
	trendingSvc TrendingProvider,
	cfg Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		tagRepo:     tagRepo,
		profileRepo: profileRepo,
		trendingSvc: trendingSvc,
		cfg:         cfg,
	}
}

// GetRecommendations returns a ranked list of upcoming events for the user,
// with advisory reasons. An empty or missing taste profile is not an error:
// the taste term is simply zero and popularity carries the ranking.
func (s *Service) GetRecommendations(ctx context.Context, userID string, opts Options) ([]domain.ScoredEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.PersonalizationEnabled {
		return s.popularFallback(ctx, opts)
	}

	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load taste profile: %w", err)
	}
	// nil profile degrades to a zero-weight one

	now := time.Now()
	from, to := candidateWindow(opts.Scope, now)

	candidates, err := s.eventRepo.FindCandidates(ctx, domain.EventFilter{
		StartsAfter:  from,
		StartsBefore: to,
		Genre:        opts.Genre,
		Style:        opts.Style,
	})
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	if len(candidates) == 0 {
		return []domain.ScoredEvent{}, nil
	}

	trendingIndex, err := s.trendingIndex(ctx, opts.Scope)
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]string, 0, len(candidates))
	for _, event := range candidates {
		candidateIDs = append(candidateIDs, event.ID)
	}

	tagsByEvent, err := s.tagRepo.FindByEventIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load event tags: %w", err)
	}

	type scoredCandidate struct {
		event domain.Event
		comps components
		score float64
	}

	scoredList := make([]scoredCandidate, 0, len(candidates))
	for _, event := range candidates {
		comps := scoreEvent(s.cfg, profile, tagsByEvent[event.ID], trendingIndex, event, now)
		score := comps.total()
		if score < opts.MinScore {
			continue
		}
		scoredList = append(scoredList, scoredCandidate{
			event: event,
			comps: comps,
			score: score,
		})
	}

	sort.SliceStable(scoredList, func(i, j int) bool {
		if scoredList[i].score == scoredList[j].score {
			return scoredList[i].event.StartsAt.Before(scoredList[j].event.StartsAt)
		}
		return scoredList[i].score > scoredList[j].score
	})

	if len(scoredList) > opts.Limit {
		scoredList = scoredList[:opts.Limit]
	}

	out := make([]domain.ScoredEvent, 0, len(scoredList))
	for _, candidate := range scoredList {
		out = append(out, domain.ScoredEvent{
			Event:   candidate.event,
			Score:   candidate.score,
			Reasons: reasonsFor(candidate.comps, opts.Scope),
		})
	}

	metrics.RecommendRequests.Inc()

	logger.Debug("recommendations served",
		"user_id", userID,
		"scope", opts.Scope,
		"candidates", len(candidates),
		"returned", len(out),
	)

	return out, nil
}

// Explain recomputes the score of exactly one event against the same profile
// and trending data and returns only the reasons. Shares scoreEvent with the
// list path, so the two cannot drift.
func (s *Service) Explain(ctx context.Context, userID, eventID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load taste profile: %w", err)
	}

	trendingIndex, err := s.trendingIndex(ctx, ScopeAll)
	if err != nil {
		return nil, err
	}

	tagsByEvent, err := s.tagRepo.FindByEventIDs(ctx, []string{eventID})
	if err != nil {
		return nil, fmt.Errorf("load event tags: %w", err)
	}

	comps := scoreEvent(s.cfg, profile, tagsByEvent[eventID], trendingIndex, event, time.Now())

	return reasonsFor(comps, ScopeAll), nil
}

// popularFallback serves users who opted out of personalization from the
// trending ranking alone.
func (s *Service) popularFallback(ctx context.Context, opts Options) ([]domain.ScoredEvent, error) {
	entries, err := s.trendingSvc.GetTrending(ctx, trendingScope(opts.Scope), opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("load trending: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.EventID)
	}

	events, err := s.eventRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load trending events: %w", err)
	}

	byID := make(map[string]domain.Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	out := make([]domain.ScoredEvent, 0, len(entries))
	for _, entry := range entries {
		event, ok := byID[entry.EventID]
		if !ok {
			continue
		}
		out = append(out, domain.ScoredEvent{
			Event:   event,
			Score:   entry.Score,
			Reasons: []string{"popular right now"},
		})
	}

	metrics.RecommendRequests.Inc()

	return out, nil
}

func (s *Service) trendingIndex(ctx context.Context, scope string) (map[string]float64, error) {
	entries, err := s.trendingSvc.GetTrending(ctx, trendingScope(scope), s.cfg.TrendingPoolSize)
	if err != nil {
		return nil, fmt.Errorf("load trending: %w", err)
	}

	return normalizeTrending(entries), nil
}
