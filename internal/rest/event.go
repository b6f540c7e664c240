package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetEventByID(ctx context.Context, id string) (domain.Event, []domain.EventTag, error)
	ListUpcoming(ctx context.Context, days int) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	CancelEvent(ctx context.Context, id string) error
	ArchiveEvent(ctx context.Context, id string) error
}

type EventHandler struct {
	eventService EventService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type EventRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category" validate:"required"`
	SourceTags  string            `json:"source_tags"`
	StartsAt    time.Time         `json:"starts_at" validate:"required"`
	EndsAt      time.Time         `json:"ends_at"`
	PriceMin    float64           `json:"price_min" validate:"gte=0"`
	PriceMax    float64           `json:"price_max" validate:"gte=0"`
	VenueName   string            `json:"venue_name"`
	Latitude    float64           `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64           `json:"longitude" validate:"gte=-180,lte=180"`
	Metadata    map[string]any    `json:"metadata"`
}

func (r EventRequest) toDomain() *domain.Event {
	return &domain.Event{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		SourceTags:  r.SourceTags,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		VenueName:   r.VenueName,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Metadata:    datatypes.JSONMap(r.Metadata),
	}
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req EventRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate event request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event, err := h.eventService.CreateEvent(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to create event", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}

func (h *EventHandler) GetEventByID(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event, tags, err := h.eventService.GetEventByID(ctx, id)
	if err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"event": event,
		"tags":  tags,
	})
}

func (h *EventHandler) ListUpcoming(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.ListUpcoming(ctx, days)
	if err != nil {
		logger.Error("Failed to list upcoming events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id := c.Param("id")

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := req.toDomain()
	event.ID = id

	updated, err := h.eventService.UpdateEvent(ctx, event)
	if err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

// DELETE cancels: events never leave the table
func (h *EventHandler) CancelEvent(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.eventService.CancelEvent(ctx, id); err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "event cancelled",
		"event_id": id,
	})
}

func (h *EventHandler) ArchiveEvent(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.eventService.ArchiveEvent(ctx, id); err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "event archived",
		"event_id": id,
	})
}
