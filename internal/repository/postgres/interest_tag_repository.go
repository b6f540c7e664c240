package postgres

import (
	"context"
	"fmt"

	"pulseMontreal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterestTagRepository struct {
	DB *gorm.DB
}

func NewInterestTagRepository(db *gorm.DB) *InterestTagRepository {
	return &InterestTagRepository{DB: db}
}

// Upsert keeps (user, category, value) unique, refreshing score and source on
// conflict.
func (r *InterestTagRepository) Upsert(ctx context.Context, tag *domain.UserInterestTag) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "category"}, {Name: "value"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"score", "source", "updated_at"}),
		},
	).Create(tag).Error
	if err != nil {
		return fmt.Errorf("failed to upsert interest tag: %w", err)
	}

	return nil
}

func (r *InterestTagRepository) FindByUser(ctx context.Context, userID string) ([]domain.UserInterestTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tags []domain.UserInterestTag
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC, value ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interest tags: %w", err)
	}

	return tags, nil
}
