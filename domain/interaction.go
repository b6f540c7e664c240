package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserEventInteraction is the append-mostly signal log driving
// personalization. One row per (user, event, type); repeating the same
// interaction refreshes occurred_at instead of adding rows.
type UserEventInteraction struct {
	ID         string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_user_event_type" json:"user_id"`
	EventID    string    `gorm:"column:event_id;type:uuid;not null;index;uniqueIndex:uq_user_event_type" json:"event_id"`
	Type       string    `gorm:"column:type;not null;uniqueIndex:uq_user_event_type" json:"type"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
}

func (UserEventInteraction) TableName() string {
	return "user_event_interactions"
}

func (i *UserEventInteraction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

const (
	InteractionView     = "VIEW"
	InteractionClick    = "CLICK"
	InteractionFavorite = "FAVORITE"
	InteractionShare    = "SHARE"
	InteractionDismiss  = "DISMISS"
)

var ValidInteractionTypes = map[string]bool{
	InteractionView:     true,
	InteractionClick:    true,
	InteractionFavorite: true,
	InteractionShare:    true,
	InteractionDismiss:  true,
}
