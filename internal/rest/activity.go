package rest

import (
	"context"
	"net/http"
	"time"

	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ActivityService interface {
	RecordInteraction(ctx context.Context, userID, eventID, interactionType string) error
	AddFavorite(ctx context.Context, userID, eventID string) error
	RemoveFavorite(ctx context.Context, userID, eventID string) error
	GetFavorites(ctx context.Context, userID string) ([]domain.Favorite, error)
	UpsertInterestTag(ctx context.Context, tag *domain.UserInterestTag) error
	GetInterestTags(ctx context.Context, userID string) ([]domain.UserInterestTag, error)
}

type ActivityHandler struct {
	activityService ActivityService
	validate        *validator.Validate
	timeout         time.Duration
}

func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: svc,
		validate:        validator.New(),
		timeout:         10 * time.Second,
	}
}

type InteractionRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
	Type    string `json:"type" validate:"required,oneof=VIEW CLICK FAVORITE SHARE DISMISS"`
}

type InterestTagRequest struct {
	Category string  `json:"category" validate:"required"`
	Value    string  `json:"value" validate:"required"`
	Score    float64 `json:"score" validate:"gte=0,lte=1"`
	Source   string  `json:"source" validate:"omitempty,oneof=manual spotify auto"`
}

func (h *ActivityHandler) RecordInteraction(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.activityService.RecordInteraction(ctx, userID, req.EventID, req.Type); err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to record interaction", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}

func (h *ActivityHandler) AddFavorite(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	eventID := c.Param("eventId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.activityService.AddFavorite(ctx, userID, eventID); err != nil {
		if err.Error() == "event not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to add favorite", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("event saved"))
}

func (h *ActivityHandler) RemoveFavorite(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	eventID := c.Param("eventId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.activityService.RemoveFavorite(ctx, userID, eventID); err != nil {
		if err.Error() == "favorite not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("favorite removed"))
}

func (h *ActivityHandler) GetFavorites(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	favorites, err := h.activityService.GetFavorites(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(favorites))
}

func (h *ActivityHandler) UpsertInterestTag(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InterestTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tag := domain.UserInterestTag{
		UserID:   userID,
		Category: req.Category,
		Value:    req.Value,
		Score:    req.Score,
		Source:   req.Source,
	}

	if err := h.activityService.UpsertInterestTag(ctx, &tag); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tag))
}

func (h *ActivityHandler) GetInterestTags(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tags, err := h.activityService.GetInterestTags(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tags))
}
