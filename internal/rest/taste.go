package rest

import (
	"context"
	"net/http"
	"time"

	"pulseMontreal/business/taste"
	"pulseMontreal/domain"
	"pulseMontreal/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type TasteService interface {
	RebuildUser(ctx context.Context, userID string) (*domain.TasteProfile, error)
	RebuildAll(ctx context.Context) (taste.BatchSummary, error)
}

type TasteProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
}

type TasteHandler struct {
	tasteService TasteService
	profileRepo  TasteProfileReader
	timeout      time.Duration
	batchTimeout time.Duration
}

func NewTasteHandler(svc TasteService, profileRepo TasteProfileReader) *TasteHandler {
	return &TasteHandler{
		tasteService: svc,
		profileRepo:  profileRepo,
		timeout:      10 * time.Second,
		batchTimeout: 5 * time.Minute,
	}
}

// GetMyProfile returns the caller's stored taste profile, or an empty one if
// it has never been built.
func (h *TasteHandler) GetMyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if profile == nil {
		profile = &domain.TasteProfile{UserID: userID, Weights: domain.ProfileWeights{}}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

// RebuildMyProfile recomputes the caller's profile on demand.
func (h *TasteHandler) RebuildMyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.tasteService.RebuildUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to rebuild taste profile", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

// RebuildAllProfiles recomputes profiles for every recently active user. Runs
// synchronously; the admin caller gets the batch summary in the response.
func (h *TasteHandler) RebuildAllProfiles(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.batchTimeout)
	defer cancel()

	summary, err := h.tasteService.RebuildAll(ctx)
	if err != nil {
		logger.Error("Failed to rebuild taste profiles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
