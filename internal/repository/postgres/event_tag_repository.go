package postgres

import (
	"context"
	"fmt"

	"pulseMontreal/domain"

	"gorm.io/gorm"
)

type EventTagRepository struct {
	DB *gorm.DB
}

func NewEventTagRepository(db *gorm.DB) *EventTagRepository {
	return &EventTagRepository{DB: db}
}

func (r *EventTagRepository) FindByEventID(ctx context.Context, eventID string) ([]domain.EventTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tags []domain.EventTag
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("category ASC, value ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find event tags: %w", err)
	}

	return tags, nil
}

// FindByEventIDs returns tags for many events at once, keyed by event id.
func (r *EventTagRepository) FindByEventIDs(ctx context.Context, eventIDs []string) (map[string][]domain.EventTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make(map[string][]domain.EventTag, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	var tags []domain.EventTag
	err := r.DB.WithContext(ctx).Where("event_id IN ?", eventIDs).Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find event tags: %w", err)
	}

	for _, tag := range tags {
		out[tag.EventID] = append(out[tag.EventID], tag)
	}

	return out, nil
}

// ReplaceForEvent swaps the full tag set of one event in a single
// transaction, so re-running enrichment is idempotent.
func (r *EventTagRepository) ReplaceForEvent(ctx context.Context, eventID string, tags []domain.EventTag) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&domain.EventTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear event tags: %w", err)
		}

		if len(tags) == 0 {
			return nil
		}

		for i := range tags {
			tags[i].EventID = eventID
		}

		if err := tx.Create(&tags).Error; err != nil {
			return fmt.Errorf("failed to insert event tags: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace tags for event %s: %w", eventID, err)
	}

	return nil
}
