package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safariplanner/internal/service"
)

// TripHandler handles trip endpoints.
type TripHandler struct {
	tripService    service.TripService
	summaryService service.SummaryService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(tripService service.TripService, summaryService service.SummaryService) *TripHandler {
	return &TripHandler{tripService: tripService, summaryService: summaryService}
}

// CreateTripRequest represents a trip creation request.
type CreateTripRequest struct {
	Name string `json:"name"`
}

// RenameTripRequest represents a trip rename request.
type RenameTripRequest struct {
	Name string `json:"name" validate:"required"`
}

// WhatsappLinkRequest represents a group chat link update request.
type WhatsappLinkRequest struct {
	WhatsappLink string `json:"whatsapp_link"`
}

// ListTrips godoc
// @Summary List the user's trips, most recently used first
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Trip
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /trips [get]
func (h *TripHandler) ListTrips(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	trips, err := h.tripService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, trips)
}

// CreateTrip godoc
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTripRequest true "Trip data"
// @Success 201 {object} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /trips [post]
func (h *TripHandler) CreateTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	trip, err := h.tripService.Create(c.Request().Context(), claims.UserID, req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, trip)
}

// GetTrip godoc
// @Summary Get one trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} model.Trip
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id} [get]
func (h *TripHandler) GetTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	trip, err := h.tripService.Get(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, trip)
}

// RenameTrip godoc
// @Summary Rename a trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body RenameTripRequest true "New name"
// @Success 200 {object} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id} [put]
func (h *TripHandler) RenameTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RenameTripRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	trip, err := h.tripService.Rename(c.Request().Context(), claims.UserID, tripID, req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, trip)
}

// SetWhatsappLink godoc
// @Summary Set the trip's group chat link
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body WhatsappLinkRequest true "Link"
// @Success 200 {object} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/whatsapp [put]
func (h *TripHandler) SetWhatsappLink(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req WhatsappLinkRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	trip, err := h.tripService.SetWhatsappLink(c.Request().Context(), claims.UserID, tripID, req.WhatsappLink)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, trip)
}

// SelectTrip godoc
// @Summary Mark a trip as the current one
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/select [post]
func (h *TripHandler) SelectTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tripService.Select(c.Request().Context(), claims.UserID, tripID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "trip selected"})
}

// DeleteTrip godoc
// @Summary Delete a trip and everything in it
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id} [delete]
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tripService.Delete(c.Request().Context(), claims.UserID, tripID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "trip deleted"})
}

// TripSummary godoc
// @Summary Get the trip's aggregated dashboard figures
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} service.TripSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /trips/{id}/summary [get]
func (h *TripHandler) TripSummary(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.summaryService.Summary(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
