package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulseMontreal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, fmt.Errorf("context error: %w", err)
	}

	var job domain.Job
	err := r.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Job{}, errors.New("job not found")
		}
		return domain.Job{}, fmt.Errorf("failed to find job: %w", err)
	}

	return job, nil
}

// SetStatus moves a job through its lifecycle; terminal statuses also stamp
// finished_at and attach the result payload.
func (r *JobRepository) SetStatus(ctx context.Context, id, status string, result datatypes.JSONMap) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if result != nil {
		updates["result"] = result
	}
	if status == domain.JobStatusCompleted || status == domain.JobStatusFailed {
		now := time.Now()
		updates["finished_at"] = &now
	}

	res := r.DB.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update job status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("job not found")
	}

	return nil
}
