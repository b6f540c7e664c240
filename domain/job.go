package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job records one fire-and-forget background run. Callers get the id back
// immediately and observe completion by polling, never by blocking.
type Job struct {
	ID         string            `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Kind       string            `gorm:"column:kind;not null" json:"kind"`
	Status     string            `gorm:"column:status;not null;default:pending" json:"status"`
	Result     datatypes.JSONMap `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	FinishedAt *time.Time        `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

const (
	JobKindEnrichBatch = "enrich_batch"

	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)
