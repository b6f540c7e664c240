package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventTag is a structured (category, value) classification attached to an
// event, e.g. (genre, techno) or (ambiance, intimate). Many per event, no
// ordering invariant.
type EventTag struct {
	ID       string `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	EventID  string `gorm:"column:event_id;type:uuid;not null;index;uniqueIndex:uq_event_tag" json:"event_id"`
	Category string `gorm:"column:category;not null;uniqueIndex:uq_event_tag" json:"category"`
	Value    string `gorm:"column:value;not null;uniqueIndex:uq_event_tag" json:"value"`
}

func (EventTag) TableName() string {
	return "event_tags"
}

func (t *EventTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
