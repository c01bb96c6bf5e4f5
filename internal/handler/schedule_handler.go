package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"safariplanner/internal/errors"
	"safariplanner/internal/service"
)

// ScheduleHandler handles schedule endpoints.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ScheduleItemRequest represents a schedule item create or update request.
type ScheduleItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// PictureRequest represents a picture append request.
type PictureRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ListSchedule godoc
// @Summary List a trip's schedule items in date order
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {array} model.ScheduleItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/schedule [get]
func (h *ScheduleHandler) ListSchedule(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.scheduleService.List(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateScheduleItem godoc
// @Summary Add a schedule item to a trip
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body ScheduleItemRequest true "Schedule item data"
// @Success 201 {object} model.ScheduleItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/schedule [post]
func (h *ScheduleHandler) CreateScheduleItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ScheduleItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	item, err := h.scheduleService.Create(c.Request().Context(), claims.UserID, tripID, service.ScheduleInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateScheduleItem godoc
// @Summary Update a schedule item
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Param request body ScheduleItemRequest true "Schedule item data"
// @Success 200 {object} model.ScheduleItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) UpdateScheduleItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ScheduleItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	item, err := h.scheduleService.Update(c.Request().Context(), claims.UserID, itemID, service.ScheduleInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteScheduleItem godoc
// @Summary Delete a schedule item
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) DeleteScheduleItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.scheduleService.Delete(c.Request().Context(), claims.UserID, itemID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "schedule item deleted"})
}

// AddPicture godoc
// @Summary Append a picture URL to a schedule item
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Param request body PictureRequest true "Picture URL"
// @Success 200 {object} model.ScheduleItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedule/{id}/pictures [post]
func (h *ScheduleHandler) AddPicture(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req PictureRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	item, err := h.scheduleService.AddPicture(c.Request().Context(), claims.UserID, itemID, req.URL)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// RemovePicture godoc
// @Summary Remove a picture from a schedule item by index
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Param index path int true "Picture index"
// @Success 200 {object} model.ScheduleItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedule/{id}/pictures/{index} [delete]
func (h *ScheduleHandler) RemovePicture(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid picture index",
			Code:  "INVALID_INDEX",
		})
	}

	item, err := h.scheduleService.RemovePicture(c.Request().Context(), claims.UserID, itemID, index)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}
