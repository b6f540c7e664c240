package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulseMontreal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TasteProfileRepository struct {
	DB *gorm.DB
}

func NewTasteProfileRepository(db *gorm.DB) *TasteProfileRepository {
	return &TasteProfileRepository{DB: db}
}

// The profile is a derived cache, stored as one JSON blob per user and
// replaced wholesale on every recompute.
type tasteProfileRow struct {
	UserID      string    `gorm:"column:user_id;primaryKey;type:uuid"`
	ProfileJSON []byte    `gorm:"column:profile_json"`
	BuiltAt     time.Time `gorm:"column:built_at"`
}

func (tasteProfileRow) TableName() string {
	return "user_taste_profiles"
}

// GetProfile returns nil without error when the user has no stored profile.
func (r *TasteProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row tasteProfileRow
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user_taste_profiles: %w", err)
	}

	var profile domain.TasteProfile
	if err := json.Unmarshal(row.ProfileJSON, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile_json: %w", err)
	}

	return &profile, nil
}

func (r *TasteProfileRepository) SaveProfile(ctx context.Context, userID string, profile *domain.TasteProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	row := tasteProfileRow{
		UserID:      userID,
		ProfileJSON: raw,
		BuiltAt:     profile.BuiltAt,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert user_taste_profiles: %w", err)
	}

	return nil
}
