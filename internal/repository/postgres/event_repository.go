package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulseMontreal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		DB: db,
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, fmt.Errorf("context error: %w", err)
	}

	var event domain.Event

	err := r.DB.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, errors.New("event not found")
		}
		return domain.Event{}, fmt.Errorf("failed to find event: %w", err)
	}

	return event, nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Event{}, nil
	}

	var events []domain.Event
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to find events by ids: %w", err)
	}

	return events, nil
}

// FindPage returns active events ordered by start time, paginated for batch
// enrichment.
func (r *EventRepository) FindPage(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 100
	}

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.EventStatusActive).
		Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page events: %w", err)
	}

	return events, nil
}

// FindBetween returns active events starting inside [from, to).
func (r *EventRepository) FindBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.EventStatusActive).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events between %s and %s: %w", from, to, err)
	}

	return events, nil
}

// FindCandidates returns active future events matching the filter, for
// recommendation scoring. Genre and style constraints go through event_tags.
func (r *EventRepository) FindCandidates(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.Event{}).
		Where("events.status = ?", domain.EventStatusActive).
		Where("events.starts_at > ?", filter.StartsAfter)

	if !filter.StartsBefore.IsZero() {
		q = q.Where("events.starts_at < ?", filter.StartsBefore)
	}

	if filter.Genre != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM event_tags t WHERE t.event_id = events.id AND t.category = ? AND t.value = ?)",
			domain.TagCategoryGenre, filter.Genre,
		)
	}

	if filter.Style != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM event_tags t WHERE t.event_id = events.id AND t.category = ? AND t.value = ?)",
			domain.TagCategoryStyle, filter.Style,
		)
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var events []domain.Event
	if err := q.Order("events.starts_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"category":    event.Category,
		"source_tags": event.SourceTags,
		"starts_at":   event.StartsAt,
		"ends_at":     event.EndsAt,
		"price_min":   event.PriceMin,
		"price_max":   event.PriceMax,
		"venue_name":  event.VenueName,
		"latitude":    event.Latitude,
		"longitude":   event.Longitude,
		"metadata":    event.Metadata,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", event.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("event not found")
	}

	return nil
}

// UpdateStatus transitions an event's lifecycle status. Events are never
// hard-deleted.
func (r *EventRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update event status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("event not found")
	}

	return nil
}

// IncrementCounter bumps a popularity counter column (view_count or
// favorite_count) by delta.
func (r *EventRepository) IncrementCounter(ctx context.Context, id, column string, delta int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if column != "view_count" && column != "favorite_count" {
		return fmt.Errorf("unknown counter column %q", column)
	}

	err := r.DB.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	return nil
}
