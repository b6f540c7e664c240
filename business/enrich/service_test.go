package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pulseMontreal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeEventRepo struct {
	events []domain.Event
	broken map[string]bool
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (domain.Event, error) {
	if f.broken[id] {
		return domain.Event{}, errors.New("event row is corrupt")
	}
	for _, event := range f.events {
		if event.ID == id {
			return event, nil
		}
	}
	return domain.Event{}, errors.New("event not found")
}

func (f *fakeEventRepo) FindPage(_ context.Context, limit, offset int) ([]domain.Event, error) {
	if offset >= len(f.events) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

type fakeTagRepo struct {
	byEvent map[string][]domain.EventTag
	calls   int
}

func (f *fakeTagRepo) ReplaceForEvent(_ context.Context, eventID string, tags []domain.EventTag) error {
	if f.byEvent == nil {
		f.byEvent = make(map[string][]domain.EventTag)
	}
	f.byEvent[eventID] = tags
	f.calls++
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]domain.Job
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.jobs == nil {
		f.jobs = make(map[string]domain.Job)
	}
	job.ID = "job-1"
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobRepo) SetStatus(_ context.Context, id, status string, result datatypes.JSONMap) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	job.Status = status
	job.Result = result
	f.jobs[id] = job
	return nil
}

func (f *fakeJobRepo) get(id string) (domain.Job, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	return job, ok
}

func newEnrichFixture(events []domain.Event) (*Service, *fakeEventRepo, *fakeTagRepo, *fakeJobRepo) {
	eventRepo := &fakeEventRepo{events: events, broken: map[string]bool{}}
	tagRepo := &fakeTagRepo{}
	jobRepo := &fakeJobRepo{}
	matcher := NewMatcher(testTaxonomy())
	return NewService(eventRepo, tagRepo, jobRepo, matcher), eventRepo, tagRepo, jobRepo
}

func TestEnrichEventReplacesTags(t *testing.T) {
	svc, _, tagRepo, _ := newEnrichFixture([]domain.Event{
		{ID: "e1", Title: "Techno Night", Description: "underground warehouse rave", Category: "music"},
	})

	tags, err := svc.EnrichEvent(context.Background(), "e1")

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, tags, tagRepo.byEvent["e1"])
}

func TestEnrichEventTwiceYieldsSameTags(t *testing.T) {
	svc, _, tagRepo, _ := newEnrichFixture([]domain.Event{
		{ID: "e1", Title: "Jazz jam", Description: "intimate bebop session"},
	})

	first, err := svc.EnrichEvent(context.Background(), "e1")
	require.NoError(t, err)

	second, err := svc.EnrichEvent(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, tagRepo.calls)
	assert.Equal(t, second, tagRepo.byEvent["e1"])
}

func TestEnrichEventUnknownID(t *testing.T) {
	svc, _, _, _ := newEnrichFixture(nil)

	_, err := svc.EnrichEvent(context.Background(), "missing")

	assert.EqualError(t, err, "event not found")
}

func TestEnrichBatchIsolatesFailures(t *testing.T) {
	events := []domain.Event{
		{ID: "e1", Title: "techno"},
		{ID: "e2", Title: "jazz"},
		{ID: "e3", Title: "broken row"},
		{ID: "e4", Title: "cozy show"},
		{ID: "e5", Title: "diy space"},
	}
	svc, eventRepo, tagRepo, _ := newEnrichFixture(events)
	eventRepo.broken["e3"] = true

	result, err := svc.EnrichBatch(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 4, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)

	// the four healthy events still got their tags replaced
	assert.Equal(t, 4, tagRepo.calls)
	assert.NotContains(t, tagRepo.byEvent, "e3")

	require.Len(t, result.Items, 5)
	assert.Equal(t, "e3", result.Items[2].EventID)
	assert.NotEmpty(t, result.Items[2].Error)
}

func TestSubmitEnrichBatchCompletesJob(t *testing.T) {
	svc, _, _, jobRepo := newEnrichFixture([]domain.Event{
		{ID: "e1", Title: "techno"},
	})

	jobID, err := svc.SubmitEnrichBatch(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)

	require.Eventually(t, func() bool {
		job, ok := jobRepo.get(jobID)
		return ok && job.Status == domain.JobStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	job, _ := jobRepo.get(jobID)
	assert.Equal(t, 1, job.Result["processed"])
	assert.Equal(t, 1, job.Result["success_count"])
	assert.Equal(t, 0, job.Result["error_count"])
}
