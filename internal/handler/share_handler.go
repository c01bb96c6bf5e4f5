package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"safariplanner/internal/errors"
	"safariplanner/internal/service"
)

// ShareHandler handles share link endpoints, including the unauthenticated
// resolve endpoint public links hit.
type ShareHandler struct {
	shareService service.ShareService
}

// NewShareHandler creates a new share handler.
func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// CreateShareRequest represents a share creation request. ExpiresAt is
// RFC 3339 when set.
type CreateShareRequest struct {
	Passcode         string `json:"passcode"`
	CanViewAttendees bool   `json:"can_view_attendees"`
	CanViewExpenses  bool   `json:"can_view_expenses"`
	CanViewSchedule  bool   `json:"can_view_schedule"`
	ExpiresAt        string `json:"expires_at"`
}

// ResolveShareRequest represents a public share resolution request.
type ResolveShareRequest struct {
	Token    string `json:"token" validate:"required"`
	Passcode string `json:"passcode"`
}

// CreateShare godoc
// @Summary Create a share link for a trip
// @Tags shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body CreateShareRequest true "Share options"
// @Success 201 {object} model.TripShare
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/shares [post]
func (h *ShareHandler) CreateShare(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CreateShareRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	in := service.ShareInput{
		Passcode:         req.Passcode,
		CanViewAttendees: req.CanViewAttendees,
		CanViewExpenses:  req.CanViewExpenses,
		CanViewSchedule:  req.CanViewSchedule,
	}
	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid expires_at",
				Code:  "INVALID_EXPIRY",
			})
		}
		in.ExpiresAt = &expiresAt
	}

	share, err := h.shareService.Create(c.Request().Context(), claims.UserID, tripID, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, share)
}

// ListShares godoc
// @Summary List a trip's share links
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {array} model.TripShare
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/shares [get]
func (h *ShareHandler) ListShares(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	shares, err := h.shareService.List(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, shares)
}

// RevokeShare godoc
// @Summary Revoke a share link
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /shares/{id}/revoke [post]
func (h *ShareHandler) RevokeShare(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	shareID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.shareService.Revoke(c.Request().Context(), claims.UserID, shareID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "share revoked"})
}

// ResolveShare godoc
// @Summary Resolve a share token into the trip's read-only view
// @Tags shares
// @Accept json
// @Produce json
// @Param request body ResolveShareRequest true "Token and optional passcode"
// @Success 200 {object} service.SharedTrip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /share/resolve [post]
func (h *ShareHandler) ResolveShare(c echo.Context) error {
	var req ResolveShareRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	view, err := h.shareService.Resolve(c.Request().Context(), req.Token, req.Passcode)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, view)
}
