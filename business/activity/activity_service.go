package activity

import (
	"context"
	"errors"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"
)

// ---- Repository interfaces ----

type InteractionRepository interface {
	Upsert(ctx context.Context, interaction *domain.UserEventInteraction) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *domain.Favorite) error
	Remove(ctx context.Context, userID, eventID string) error
	FindByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type InterestTagRepository interface {
	Upsert(ctx context.Context, tag *domain.UserInterestTag) error
	FindByUser(ctx context.Context, userID string) ([]domain.UserInterestTag, error)
}

type EventRepository interface {
	FindByID(ctx context.Context, id string) (domain.Event, error)
	IncrementCounter(ctx context.Context, id, column string, delta int) error
}

// ---- Service ----

// activityService records the signal log personalization feeds on:
// interactions, favorites and declared interest tags.
type activityService struct {
	interactionRepo InteractionRepository
	favoriteRepo    FavoriteRepository
	interestRepo    InterestTagRepository
	eventRepo       EventRepository
}

func NewActivityService(
	interactionRepo InteractionRepository,
	favoriteRepo FavoriteRepository,
	interestRepo InterestTagRepository,
	eventRepo EventRepository,
) *activityService {
	return &activityService{
		interactionRepo: interactionRepo,
		favoriteRepo:    favoriteRepo,
		interestRepo:    interestRepo,
		eventRepo:       eventRepo,
	}
}

// RecordInteraction upserts one (user, event, type) row; a repeat refreshes
// the timestamp instead of accumulating rows.
func (s *activityService) RecordInteraction(ctx context.Context, userID, eventID, interactionType string) error {
	if !domain.ValidInteractionTypes[interactionType] {
		return errors.New("invalid interaction type")
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return err
	}

	interaction := domain.UserEventInteraction{
		UserID:     userID,
		EventID:    eventID,
		Type:       interactionType,
		OccurredAt: time.Now(),
	}

	if err := s.interactionRepo.Upsert(ctx, &interaction); err != nil {
		return err
	}

	if interactionType == domain.InteractionView {
		if err := s.eventRepo.IncrementCounter(ctx, eventID, "view_count", 1); err != nil {
			logger.Warn("failed to bump view counter", "event_id", eventID, "error", err)
		}
	}

	metrics.InteractionsTotal.WithLabelValues(interactionType).Inc()

	return nil
}

// AddFavorite saves the event and records the matching FAVORITE interaction
// so the taste profile sees it.
func (s *activityService) AddFavorite(ctx context.Context, userID, eventID string) error {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return err
	}

	favorite := domain.Favorite{
		UserID:  userID,
		EventID: eventID,
	}

	if err := s.favoriteRepo.Add(ctx, &favorite); err != nil {
		return err
	}

	interaction := domain.UserEventInteraction{
		UserID:     userID,
		EventID:    eventID,
		Type:       domain.InteractionFavorite,
		OccurredAt: time.Now(),
	}
	if err := s.interactionRepo.Upsert(ctx, &interaction); err != nil {
		logger.Warn("failed to record favorite interaction", "event_id", eventID, "error", err)
	}

	if err := s.eventRepo.IncrementCounter(ctx, eventID, "favorite_count", 1); err != nil {
		logger.Warn("failed to bump favorite counter", "event_id", eventID, "error", err)
	}

	metrics.InteractionsTotal.WithLabelValues(domain.InteractionFavorite).Inc()

	return nil
}

func (s *activityService) RemoveFavorite(ctx context.Context, userID, eventID string) error {
	if err := s.favoriteRepo.Remove(ctx, userID, eventID); err != nil {
		return err
	}

	if err := s.eventRepo.IncrementCounter(ctx, eventID, "favorite_count", -1); err != nil {
		logger.Warn("failed to drop favorite counter", "event_id", eventID, "error", err)
	}

	return nil
}

func (s *activityService) GetFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.favoriteRepo.FindByUser(ctx, userID)
}

// UpsertInterestTag records a declared preference with a score in [0,1].
func (s *activityService) UpsertInterestTag(ctx context.Context, tag *domain.UserInterestTag) error {
	if tag.Category == "" || tag.Value == "" {
		return errors.New("interest tag category and value are required")
	}
	if tag.Score < 0 || tag.Score > 1 {
		return errors.New("interest tag score must be between 0 and 1")
	}
	if tag.Source == "" {
		tag.Source = domain.InterestSourceManual
	}
	if !domain.ValidInterestSources[tag.Source] {
		return errors.New("invalid interest tag source")
	}

	return s.interestRepo.Upsert(ctx, tag)
}

func (s *activityService) GetInterestTags(ctx context.Context, userID string) ([]domain.UserInterestTag, error) {
	return s.interestRepo.FindByUser(ctx, userID)
}
