package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserInterestTag is a declared preference: (user, category, value) with a
// strength in [0,1] and a source label. Upserted, never duplicated.
type UserInterestTag struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_user_interest" json:"user_id"`
	Category  string    `gorm:"column:category;not null;uniqueIndex:uq_user_interest" json:"category"`
	Value     string    `gorm:"column:value;not null;uniqueIndex:uq_user_interest" json:"value"`
	Score     float64   `gorm:"column:score;not null" json:"score"`
	Source    string    `gorm:"column:source;not null;default:manual" json:"source"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserInterestTag) TableName() string {
	return "user_interest_tags"
}

func (t *UserInterestTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

const (
	InterestSourceManual  = "manual"
	InterestSourceSpotify = "spotify"
	InterestSourceAuto    = "auto"
)

var ValidInterestSources = map[string]bool{
	InterestSourceManual:  true,
	InterestSourceSpotify: true,
	InterestSourceAuto:    true,
}
