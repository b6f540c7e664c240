package rest

import (
	"context"
	"net/http"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type TrendingService interface {
	GetTrending(ctx context.Context, scope string, limit int) ([]domain.TrendingEvent, error)
}

type TrendingEventRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Event, error)
}

type TrendingHandler struct {
	trendingService TrendingService
	eventRepo       TrendingEventRepository
	timeout         time.Duration
}

func NewTrendingHandler(svc TrendingService, eventRepo TrendingEventRepository) *TrendingHandler {
	return &TrendingHandler{
		trendingService: svc,
		eventRepo:       eventRepo,
		timeout:         10 * time.Second,
	}
}

type TrendingQuery struct {
	Scope string `query:"scope"`
	Limit int    `query:"limit"`
}

// TrendingEntry is a trending row joined with its event for the public feed.
type TrendingEntry struct {
	Event domain.Event `json:"event"`
	Score float64      `json:"score"`
}

func (h *TrendingHandler) GetTrending(c echo.Context) error {
	var q TrendingQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entries, err := h.trendingService.GetTrending(ctx, q.Scope, q.Limit)
	if err != nil {
		if err.Error() == "invalid trending scope" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get trending events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.EventID)
	}

	events, err := h.eventRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load trending events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	byID := make(map[string]domain.Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	out := make([]TrendingEntry, 0, len(entries))
	for _, entry := range entries {
		event, ok := byID[entry.EventID]
		if !ok {
			continue
		}
		out = append(out, TrendingEntry{Event: event, Score: entry.Score})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}
