package postgres

import (
	"context"
	"fmt"
	"time"

	"pulseMontreal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

// Upsert records an interaction. A repeat of the same (user, event, type)
// refreshes occurred_at rather than adding a row.
func (r *InteractionRepository) Upsert(ctx context.Context, interaction *domain.UserEventInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if interaction.OccurredAt.IsZero() {
		interaction.OccurredAt = time.Now()
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "event_id"}, {Name: "type"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"occurred_at": interaction.OccurredAt,
			}),
		},
	).Create(interaction).Error
	if err != nil {
		return fmt.Errorf("failed to upsert interaction: %w", err)
	}

	return nil
}

func (r *InteractionRepository) FindByUser(ctx context.Context, userID string) ([]domain.UserEventInteraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.UserEventInteraction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions: %w", err)
	}

	return interactions, nil
}

// FindSince returns all interactions that occurred after the given time,
// across all users. Feeds the trending computation.
func (r *InteractionRepository) FindSince(ctx context.Context, since time.Time) ([]domain.UserEventInteraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.UserEventInteraction
	err := r.DB.WithContext(ctx).
		Where("occurred_at > ?", since).
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions since %s: %w", since, err)
	}

	return interactions, nil
}

// ActiveUserIDs returns the distinct users with at least one interaction
// after the given time.
func (r *InteractionRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).Model(&domain.UserEventInteraction{}).
		Where("occurred_at > ?", since).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active users: %w", err)
	}

	return ids, nil
}
