package rest

import (
	"context"
	"net/http"
	"time"

	"pulseMontreal/business/recommend"
	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, opts recommend.Options) ([]domain.ScoredEvent, error)
	Explain(ctx context.Context, userID, eventID string) ([]string, error)
}

type RecommendationHandler struct {
	recommendService RecommendationService
	timeout          time.Duration
}

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendService: svc,
		timeout:          10 * time.Second,
	}
}

type RecommendQuery struct {
	Limit    int     `query:"limit"`
	Genre    string  `query:"genre"`
	Style    string  `query:"style"`
	Scope    string  `query:"scope"`
	MinScore float64 `query:"min_score"`
}

func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	minScore := q.MinScore
	if c.QueryParam("min_score") == "" {
		minScore = -1 // use the engine default
	}

	opts, err := recommend.NewOptions(q.Limit, q.Genre, q.Style, q.Scope, minScore)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recommendations, err := h.recommendService.GetRecommendations(ctx, userID, opts)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if err.Error() == "user not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommendations))
}

func (h *RecommendationHandler) Explain(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	eventID := c.Param("eventId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reasons, err := h.recommendService.Explain(ctx, userID, eventID)
	if err != nil {
		if err.Error() == "user not found" || err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to explain recommendation", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"event_id": eventID,
		"reasons":  reasons,
	}))
}
