package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CREATE TABLE public.events (
//     id              UUID PRIMARY KEY,
//     title           TEXT NOT NULL,
//     description     TEXT,
//     category        TEXT NOT NULL,
//     source_tags     TEXT,
//     starts_at       TIMESTAMPTZ NOT NULL,
//     ends_at         TIMESTAMPTZ,
//     price_min       NUMERIC,
//     price_max       NUMERIC,
//     venue_name      TEXT,
//     latitude        DOUBLE PRECISION,
//     longitude       DOUBLE PRECISION,
//     status          TEXT NOT NULL DEFAULT 'active',
//     view_count      BIGINT DEFAULT 0,
//     favorite_count  BIGINT DEFAULT 0,
//     metadata        JSONB,
//     created_at      TIMESTAMPTZ,
//     updated_at      TIMESTAMPTZ
// );

type Event struct {
	ID          string `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Category    string `gorm:"column:category;not null" json:"category"`
	// SourceTags is the raw comma-separated tag string carried over from the
	// ingestion source; structured tags live in event_tags.
	SourceTags    string            `gorm:"column:source_tags" json:"source_tags"`
	StartsAt      time.Time         `gorm:"column:starts_at;not null;index" json:"starts_at"`
	EndsAt        time.Time         `gorm:"column:ends_at" json:"ends_at"`
	PriceMin      float64           `gorm:"column:price_min" json:"price_min"`
	PriceMax      float64           `gorm:"column:price_max" json:"price_max"`
	VenueName     string            `gorm:"column:venue_name" json:"venue_name"`
	Latitude      float64           `gorm:"column:latitude" json:"latitude"`
	Longitude     float64           `gorm:"column:longitude" json:"longitude"`
	Status        string            `gorm:"column:status;default:active;index" json:"status"`
	ViewCount     int64             `gorm:"column:view_count;default:0" json:"view_count"`
	FavoriteCount int64             `gorm:"column:favorite_count;default:0" json:"favorite_count"`
	Metadata      datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Events are never hard-deleted; they only transition status.
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
	EventStatusArchived  = "archived"
)

// EventFilter narrows candidate queries for recommendation scoring. Zero
// values mean "no constraint" except StartsAfter, which is always set.
type EventFilter struct {
	StartsAfter  time.Time
	StartsBefore time.Time
	Genre        string
	Style        string
	Limit        int
}
