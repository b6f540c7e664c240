package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulseMontreal/business/recommend"
	"pulseMontreal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommendationService struct {
	lastOpts recommend.Options
	result   []domain.ScoredEvent
	err      error
}

func (f *fakeRecommendationService) GetRecommendations(_ context.Context, _ string, opts recommend.Options) ([]domain.ScoredEvent, error) {
	f.lastOpts = opts
	return f.result, f.err
}

func (f *fakeRecommendationService) Explain(_ context.Context, _, _ string) ([]string, error) {
	return []string{"coming up soon"}, f.err
}

func recommendRequest(t *testing.T, target string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	return rec, c
}

func TestGetRecommendationsAppliesDefaults(t *testing.T) {
	svc := &fakeRecommendationService{result: []domain.ScoredEvent{}}
	handler := NewRecommendationHandler(svc)

	rec, c := recommendRequest(t, "/api/v1/recommendations")
	require.NoError(t, handler.GetRecommendations(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, svc.lastOpts.Limit)
	assert.Equal(t, "all", svc.lastOpts.Scope)
	assert.Equal(t, 0.05, svc.lastOpts.MinScore)
}

func TestGetRecommendationsParsesQuery(t *testing.T) {
	svc := &fakeRecommendationService{result: []domain.ScoredEvent{}}
	handler := NewRecommendationHandler(svc)

	rec, c := recommendRequest(t, "/api/v1/recommendations?limit=5&scope=today&genre=Techno&min_score=0.2")
	require.NoError(t, handler.GetRecommendations(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastOpts.Limit)
	assert.Equal(t, "today", svc.lastOpts.Scope)
	assert.Equal(t, "techno", svc.lastOpts.Genre)
	assert.Equal(t, 0.2, svc.lastOpts.MinScore)
}

func TestGetRecommendationsRejectsBadScope(t *testing.T) {
	svc := &fakeRecommendationService{}
	handler := NewRecommendationHandler(svc)

	rec, c := recommendRequest(t, "/api/v1/recommendations?scope=someday")
	require.NoError(t, handler.GetRecommendations(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendationsUnknownUserIs404(t *testing.T) {
	svc := &fakeRecommendationService{err: errors.New("user not found")}
	handler := NewRecommendationHandler(svc)

	rec, c := recommendRequest(t, "/api/v1/recommendations")
	require.NoError(t, handler.GetRecommendations(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecommendationsRequiresAuthContext(t *testing.T) {
	svc := &fakeRecommendationService{}
	handler := NewRecommendationHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetRecommendations(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
