package event

import (
	"context"
	"errors"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id string) (domain.Event, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type EventTagRepository interface {
	FindByEventID(ctx context.Context, eventID string) ([]domain.EventTag, error)
}

// Enricher assigns structured tags right after create/update so new events
// are immediately matchable.
type Enricher interface {
	EnrichEvent(ctx context.Context, eventID string) ([]domain.EventTag, error)
}

type eventService struct {
	eventRepo EventRepository
	tagRepo   EventTagRepository
	enricher  Enricher
}

func NewEventService(eventRepo EventRepository, tagRepo EventTagRepository, enricher Enricher) *eventService {
	return &eventService{
		eventRepo: eventRepo,
		tagRepo:   tagRepo,
		enricher:  enricher,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.Title == "" {
		return nil, errors.New("event title is required")
	}
	if event.Category == "" {
		return nil, errors.New("event category is required")
	}
	if event.StartsAt.IsZero() {
		return nil, errors.New("event start time is required")
	}
	if !event.EndsAt.IsZero() && event.EndsAt.Before(event.StartsAt) {
		return nil, errors.New("event end time cannot precede start time")
	}

	event.Status = domain.EventStatusActive

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.enricher != nil {
		if _, err := s.enricher.EnrichEvent(ctx, event.ID); err != nil {
			// tags can be backfilled by the batch later
			logger.Warn("enrichment on create failed", "event_id", event.ID, "error", err)
		}
	}

	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (domain.Event, []domain.EventTag, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, nil, err
	}

	tags, err := s.tagRepo.FindByEventID(ctx, id)
	if err != nil {
		return domain.Event{}, nil, err
	}

	return event, tags, nil
}

func (s *eventService) ListUpcoming(ctx context.Context, days int) ([]domain.Event, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	return s.eventRepo.FindBetween(ctx, now, now.AddDate(0, 0, days))
}

func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	existing, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	if existing.Status != domain.EventStatusActive {
		return nil, errors.New("cannot update a cancelled or archived event")
	}

	if event.Title == "" {
		return nil, errors.New("event title is required")
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	if s.enricher != nil {
		if _, err := s.enricher.EnrichEvent(ctx, event.ID); err != nil {
			logger.Warn("enrichment on update failed", "event_id", event.ID, "error", err)
		}
	}

	return event, nil
}

// CancelEvent and ArchiveEvent are the only "deletes" there are: events
// never leave the table.
func (s *eventService) CancelEvent(ctx context.Context, id string) error {
	return s.eventRepo.UpdateStatus(ctx, id, domain.EventStatusCancelled)
}

func (s *eventService) ArchiveEvent(ctx context.Context, id string) error {
	return s.eventRepo.UpdateStatus(ctx, id, domain.EventStatusArchived)
}
