package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safariplanner/internal/service"
)

// AttendeeHandler handles attendee endpoints.
type AttendeeHandler struct {
	attendeeService service.AttendeeService
}

// NewAttendeeHandler creates a new attendee handler.
func NewAttendeeHandler(attendeeService service.AttendeeService) *AttendeeHandler {
	return &AttendeeHandler{attendeeService: attendeeService}
}

// AttendeeRequest represents an attendee create or update request.
type AttendeeRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// ListAttendees godoc
// @Summary List a trip's attendees
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {array} model.Attendee
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/attendees [get]
func (h *AttendeeHandler) ListAttendees(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	attendees, err := h.attendeeService.List(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, attendees)
}

// CreateAttendee godoc
// @Summary Add an attendee to a trip
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body AttendeeRequest true "Attendee data"
// @Success 201 {object} model.Attendee
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/attendees [post]
func (h *AttendeeHandler) CreateAttendee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AttendeeRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	attendee, err := h.attendeeService.Create(c.Request().Context(), claims.UserID, tripID, service.AttendeeInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, attendee)
}

// UpdateAttendee godoc
// @Summary Update an attendee
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendee ID"
// @Param request body AttendeeRequest true "Attendee data"
// @Success 200 {object} model.Attendee
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attendees/{id} [put]
func (h *AttendeeHandler) UpdateAttendee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	attendeeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AttendeeRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	attendee, err := h.attendeeService.Update(c.Request().Context(), claims.UserID, attendeeID, service.AttendeeInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, attendee)
}

// DeleteAttendee godoc
// @Summary Remove an attendee
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendee ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attendees/{id} [delete]
func (h *AttendeeHandler) DeleteAttendee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	attendeeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.attendeeService.Delete(c.Request().Context(), claims.UserID, attendeeID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "attendee deleted"})
}
