package enrich

import (
	"context"
	"fmt"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"

	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type EventRepository interface {
	FindByID(ctx context.Context, id string) (domain.Event, error)
	FindPage(ctx context.Context, limit, offset int) ([]domain.Event, error)
}

type EventTagRepository interface {
	ReplaceForEvent(ctx context.Context, eventID string, tags []domain.EventTag) error
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	SetStatus(ctx context.Context, id, status string, result datatypes.JSONMap) error
}

// ---- Results ----

type ItemResult struct {
	EventID string `json:"event_id"`
	Error   string `json:"error,omitempty"`
	TagsSet int    `json:"tags_set"`
}

type BatchResult struct {
	Processed    int          `json:"processed"`
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Items        []ItemResult `json:"items"`
}

// ---- Service ----

type Service struct {
	eventRepo EventRepository
	tagRepo   EventTagRepository
	jobRepo   JobRepository
	matcher   *Matcher
}

func NewService(
	eventRepo EventRepository,
	tagRepo EventTagRepository,
	jobRepo JobRepository,
	matcher *Matcher,
) *Service {
	return &Service{
		eventRepo: eventRepo,
		tagRepo:   tagRepo,
		jobRepo:   jobRepo,
		matcher:   matcher,
	}
}

// EnrichEvent recomputes the structured tag set for one event from its free
// text and replaces the stored tags. Re-running on unchanged text yields the
// same tag set.
func (s *Service) EnrichEvent(ctx context.Context, eventID string) ([]domain.EventTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		metrics.EnrichedEventsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	tags := s.matcher.Match(event.Title, event.Description, event.Category, event.SourceTags)

	if err := s.tagRepo.ReplaceForEvent(ctx, event.ID, tags); err != nil {
		metrics.EnrichedEventsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.EnrichedEventsTotal.WithLabelValues("success").Inc()

	return tags, nil
}

// EnrichBatch enriches a page of events. One event failing never aborts the
// batch; already-applied items are not rolled back.
func (s *Service) EnrichBatch(ctx context.Context, limit, offset int) (BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("context error: %w", err)
	}

	events, err := s.eventRepo.FindPage(ctx, limit, offset)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to load events for enrichment: %w", err)
	}

	result := BatchResult{Items: make([]ItemResult, 0, len(events))}

	for _, event := range events {
		result.Processed++

		tags, err := s.EnrichEvent(ctx, event.ID)
		if err != nil {
			result.ErrorCount++
			result.Items = append(result.Items, ItemResult{
				EventID: event.ID,
				Error:   err.Error(),
			})
			logger.Warn("event enrichment failed", "event_id", event.ID, "error", err)
			continue
		}

		result.SuccessCount++
		result.Items = append(result.Items, ItemResult{
			EventID: event.ID,
			TagsSet: len(tags),
		})
	}

	return result, nil
}

const (
	backgroundBatchTimeout = 10 * time.Minute

	// DefaultBatchLimit is the page size used when a batch request does not
	// set one.
	DefaultBatchLimit = 500
)

// SubmitEnrichBatch starts a batch run in the background and returns the job
// id immediately. Completion is observed by polling the job record.
func (s *Service) SubmitEnrichBatch(ctx context.Context, limit, offset int) (string, error) {
	job := domain.Job{
		Kind:   domain.JobKindEnrichBatch,
		Status: domain.JobStatusPending,
	}

	if err := s.jobRepo.Create(ctx, &job); err != nil {
		return "", fmt.Errorf("failed to create enrichment job: %w", err)
	}

	go s.runBatchJob(job.ID, limit, offset)

	return job.ID, nil
}

func (s *Service) runBatchJob(jobID string, limit, offset int) {
	// detached from the triggering request on purpose
	ctx, cancel := context.WithTimeout(context.Background(), backgroundBatchTimeout)
	defer cancel()

	if err := s.jobRepo.SetStatus(ctx, jobID, domain.JobStatusRunning, nil); err != nil {
		logger.Error("failed to mark enrichment job running", "job_id", jobID, "error", err)
		return
	}

	result, err := s.EnrichBatch(ctx, limit, offset)
	if err != nil {
		_ = s.jobRepo.SetStatus(ctx, jobID, domain.JobStatusFailed, datatypes.JSONMap{
			"error": err.Error(),
		})
		logger.Error("enrichment batch job failed", "job_id", jobID, "error", err)
		return
	}

	summary := datatypes.JSONMap{
		"processed":     result.Processed,
		"success_count": result.SuccessCount,
		"error_count":   result.ErrorCount,
	}

	if err := s.jobRepo.SetStatus(ctx, jobID, domain.JobStatusCompleted, summary); err != nil {
		logger.Error("failed to finish enrichment job", "job_id", jobID, "error", err)
		return
	}

	logger.Info("enrichment batch job finished",
		"job_id", jobID,
		"processed", result.Processed,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)
}
