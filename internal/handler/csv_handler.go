package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safariplanner/internal/service"
)

// CSVHandler handles trip data export and import.
type CSVHandler struct {
	csvService service.CSVService
}

// NewCSVHandler creates a new CSV handler.
func NewCSVHandler(csvService service.CSVService) *CSVHandler {
	return &CSVHandler{csvService: csvService}
}

// ExportTrip godoc
// @Summary Export a trip's data as CSV
// @Tags csv
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {string} string "CSV data"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/export [get]
func (h *CSVHandler) ExportTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	data, err := h.csvService.Export(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="trip-export.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// ImportTrip godoc
// @Summary Import attendees, expenses and schedule rows from CSV
// @Tags csv
// @Accept text/csv
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/import [post]
func (h *CSVHandler) ImportTrip(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.csvService.Import(c.Request().Context(), claims.UserID, tripID, c.Request().Body)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}
