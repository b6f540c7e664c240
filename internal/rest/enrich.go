package rest

import (
	"context"
	"net/http"
	"time"

	"pulseMontreal/business/enrich"
	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type EnrichService interface {
	EnrichEvent(ctx context.Context, eventID string) ([]domain.EventTag, error)
	SubmitEnrichBatch(ctx context.Context, limit, offset int) (string, error)
}

type JobReader interface {
	FindByID(ctx context.Context, id string) (domain.Job, error)
}

type EnrichHandler struct {
	enrichService EnrichService
	jobRepo       JobReader
	timeout       time.Duration
}

func NewEnrichHandler(svc EnrichService, jobRepo JobReader) *EnrichHandler {
	return &EnrichHandler{
		enrichService: svc,
		jobRepo:       jobRepo,
		timeout:       30 * time.Second,
	}
}

type EnrichBatchRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (h *EnrichHandler) EnrichEvent(c echo.Context) error {
	eventID := c.Param("eventId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tags, err := h.enrichService.EnrichEvent(ctx, eventID)
	if err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to enrich event", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tags))
}

func (h *EnrichHandler) SubmitEnrichBatch(c echo.Context) error {
	var req EnrichBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Limit <= 0 {
		req.Limit = enrich.DefaultBatchLimit
	}
	if req.Offset < 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "offset cannot be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	jobID, err := h.enrichService.SubmitEnrichBatch(ctx, req.Limit, req.Offset)
	if err != nil {
		logger.Error("Failed to submit enrichment batch", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusAccepted, fres.Response.StatusOK(map[string]any{
		"job_id": jobID,
	}))
}

func (h *EnrichHandler) GetJob(c echo.Context) error {
	jobID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	job, err := h.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(job))
}
