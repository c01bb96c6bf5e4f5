package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/service"
)

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpensePayerRequest is one payer entry in a multi-payer expense request.
type ExpensePayerRequest struct {
	AttendeeID string `json:"attendee_id"`
	Name       string `json:"name" validate:"required"`
	Amount     string `json:"amount"`
}

// ExpenseRequest represents an expense create or update request. Amount
// fields are strings to keep cents exact on the wire.
type ExpenseRequest struct {
	Category     string                `json:"category" validate:"required"`
	Amount       string                `json:"amount" validate:"required"`
	Description  string                `json:"description"`
	PaidBy       string                `json:"paid_by"`
	Payers       []ExpensePayerRequest `json:"payers"`
	SplitEqually bool                  `json:"split_equally"`
}

func (r *ExpenseRequest) toInput() (service.ExpenseInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.ExpenseInput{}, errors.ErrInvalidAmount
	}

	in := service.ExpenseInput{
		Category:     model.ExpenseCategory(r.Category),
		Amount:       amount,
		Description:  r.Description,
		PaidBy:       r.PaidBy,
		SplitEqually: r.SplitEqually,
	}

	for _, p := range r.Payers {
		payer := service.PayerInput{Name: p.Name}
		if p.AttendeeID != "" {
			id, err := uuid.Parse(p.AttendeeID)
			if err != nil {
				return service.ExpenseInput{}, errors.ErrAttendeeNotFound
			}
			payer.AttendeeID = &id
		}
		if p.Amount != "" {
			payer.Amount, err = decimal.NewFromString(p.Amount)
			if err != nil {
				return service.ExpenseInput{}, errors.ErrInvalidAmount
			}
		}
		in.Payers = append(in.Payers, payer)
	}
	return in, nil
}

// ListExpenses godoc
// @Summary List a trip's expenses, newest first
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {array} model.Expense
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), claims.UserID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense godoc
// @Summary Record an expense on a trip
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trips/{id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	in, err := req.toInput()
	if err != nil {
		return domainError(err)
	}

	expense, err := h.expenseService.Create(c.Request().Context(), claims.UserID, tripID, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	expenseID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	in, err := req.toInput()
	if err != nil {
		return domainError(err)
	}

	expense, err := h.expenseService.Update(c.Request().Context(), claims.UserID, expenseID, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	expenseID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), claims.UserID, expenseID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "expense deleted"})
}
