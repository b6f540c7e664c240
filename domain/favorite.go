package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is the explicit saved-event signal, the strongest positive input
// to the taste profile and also a user-facing feature of its own.
type Favorite struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_user_favorite" json:"user_id"`
	EventID   string    `gorm:"column:event_id;type:uuid;not null;uniqueIndex:uq_user_favorite" json:"event_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
