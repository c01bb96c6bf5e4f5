package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
	"safariplanner/internal/split"
)

// PayerInput is one payer's entry in a multi-payer expense request.
type PayerInput struct {
	AttendeeID *uuid.UUID
	Name       string
	Amount     decimal.Decimal
}

// ExpenseInput carries the editable expense fields. An input with no Payers
// follows the single-payer path: PaidBy is stored as-is and no payer rows are
// written. With Payers present, the split is validated (or computed when
// SplitEqually is set) and PaidBy is derived from the payer set.
type ExpenseInput struct {
	Category     model.ExpenseCategory
	Amount       decimal.Decimal
	Description  string
	PaidBy       string
	Payers       []PayerInput
	SplitEqually bool
}

// ExpenseService handles expense operations.
type ExpenseService interface {
	List(ctx context.Context, userID, tripID uuid.UUID) ([]model.Expense, error)
	Create(ctx context.Context, userID, tripID uuid.UUID, in ExpenseInput) (*model.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, in ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	tripRepo    repository.TripRepository
	loader      *TripDataLoader
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo repository.ExpenseRepository, tripRepo repository.TripRepository, loader *TripDataLoader) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, tripRepo: tripRepo, loader: loader}
}

// List returns a trip's expenses newest first, payer rows attached.
func (s *expenseService) List(ctx context.Context, userID, tripID uuid.UUID) ([]model.Expense, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return s.expenseRepo.ListByTrip(ctx, tripID)
}

// Create records an expense on a trip the user owns. The expense and its
// payer rows are written in one transaction.
func (s *expenseService) Create(ctx context.Context, userID, tripID uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	expense := &model.Expense{
		TripID: tripID,
		UserID: userID,
	}
	if err := s.apply(expense, in); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.CreateWithPayers(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.loader.Invalidate(ctx, tripID)
	return expense, nil
}

// Update edits an expense, replacing its payer rows atomically.
func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, expenseID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	if err := s.apply(expense, in); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.UpdateWithPayers(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	s.loader.Invalidate(ctx, expense.TripID)
	return expense, nil
}

// Delete removes an expense and its payer rows.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, expenseID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrExpenseNotFound
		}
		return fmt.Errorf("find expense: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, expenseID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	s.loader.Invalidate(ctx, expense.TripID)
	return nil
}

// apply validates the input and writes category, amount, description, payer
// rows and the paid_by label onto the expense.
func (s *expenseService) apply(expense *model.Expense, in ExpenseInput) error {
	if !in.Category.Valid() {
		return errors.ErrInvalidCategory
	}
	if in.Amount.IsNegative() {
		return errors.ErrInvalidAmount
	}

	expense.Category = in.Category
	expense.Amount = in.Amount
	expense.Description = in.Description

	if len(in.Payers) == 0 {
		if in.SplitEqually {
			return errors.ErrEmptySplit
		}
		expense.PaidBy = in.PaidBy
		expense.Payers = nil
		return nil
	}

	shares := make([]split.Share, len(in.Payers))
	for i, p := range in.Payers {
		shares[i] = split.Share{PayerName: p.Name, Amount: p.Amount}
	}
	if in.SplitEqually {
		split.Equal(in.Amount, shares)
	}
	if err := split.Validate(in.Amount, shares); err != nil {
		return err
	}

	expense.PaidBy = split.PaidByLabel(shares)
	expense.Payers = make([]model.ExpensePayer, len(shares))
	for i, share := range shares {
		expense.Payers[i] = model.ExpensePayer{
			AttendeeID: in.Payers[i].AttendeeID,
			PayerName:  share.PayerName,
			Amount:     share.Amount,
		}
	}
	return nil
}
