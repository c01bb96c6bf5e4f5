package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"safariplanner/internal/cache"
	"safariplanner/internal/errors"
	"safariplanner/internal/model"
)

func newExpenseServiceForTest(tripRepo *MockTripRepository, expenseRepo *MockExpenseRepository) ExpenseService {
	loader := NewTripDataLoader(new(MockAttendeeRepository), expenseRepo, new(MockScheduleRepository), new(cache.Client))
	return NewExpenseService(expenseRepo, tripRepo, loader)
}

func TestExpenseService_CreateSinglePayer(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	expenseRepo := new(MockExpenseRepository)
	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	expenseRepo.On("CreateWithPayers", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

	service := newExpenseServiceForTest(tripRepo, expenseRepo)
	expense, err := service.Create(context.Background(), userID, tripID, ExpenseInput{
		Category: model.CategoryFood,
		Amount:   decimal.RequireFromString("45.50"),
		PaidBy:   "Alice",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Alice", expense.PaidBy)
	assert.Empty(t, expense.Payers)
	tripRepo.AssertExpectations(t)
	expenseRepo.AssertExpectations(t)
}

func TestExpenseService_CreateEqualSplit(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	expenseRepo := new(MockExpenseRepository)
	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	expenseRepo.On("CreateWithPayers", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

	service := newExpenseServiceForTest(tripRepo, expenseRepo)
	expense, err := service.Create(context.Background(), userID, tripID, ExpenseInput{
		Category: model.CategoryTransport,
		Amount:   decimal.RequireFromString("100.00"),
		Payers: []PayerInput{
			{Name: "Alice"},
			{Name: "Bob"},
			{Name: "Carol"},
		},
		SplitEqually: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.PaidByMultiple, expense.PaidBy)
	assert.Len(t, expense.Payers, 3)
	assert.Equal(t, "33.33", expense.Payers[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", expense.Payers[1].Amount.StringFixed(2))
	assert.Equal(t, "33.34", expense.Payers[2].Amount.StringFixed(2))

	total := decimal.Zero
	for _, p := range expense.Payers {
		total = total.Add(p.Amount)
	}
	assert.True(t, total.Equal(expense.Amount))
}

func TestExpenseService_CreateSinglePayerInMultiMode(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	expenseRepo := new(MockExpenseRepository)
	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	expenseRepo.On("CreateWithPayers", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

	service := newExpenseServiceForTest(tripRepo, expenseRepo)
	expense, err := service.Create(context.Background(), userID, tripID, ExpenseInput{
		Category: model.CategoryFood,
		Amount:   decimal.RequireFromString("20.00"),
		Payers: []PayerInput{
			{Name: "Alice", Amount: decimal.RequireFromString("20.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Alice", expense.PaidBy)
	assert.Len(t, expense.Payers, 1)
}

func TestExpenseService_CreateValidation(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tests := []struct {
		name          string
		input         ExpenseInput
		expectedError error
	}{
		{
			name: "unknown category",
			input: ExpenseInput{
				Category: model.ExpenseCategory("gambling"),
				Amount:   decimal.RequireFromString("10.00"),
				PaidBy:   "Alice",
			},
			expectedError: errors.ErrInvalidCategory,
		},
		{
			name: "negative amount",
			input: ExpenseInput{
				Category: model.CategoryOther,
				Amount:   decimal.RequireFromString("-1.00"),
				PaidBy:   "Alice",
			},
			expectedError: errors.ErrInvalidAmount,
		},
		{
			name: "equal split with no payers",
			input: ExpenseInput{
				Category:     model.CategoryFood,
				Amount:       decimal.RequireFromString("30.00"),
				SplitEqually: true,
			},
			expectedError: errors.ErrEmptySplit,
		},
		{
			name: "payer amounts do not sum to total",
			input: ExpenseInput{
				Category: model.CategoryFood,
				Amount:   decimal.RequireFromString("30.00"),
				Payers: []PayerInput{
					{Name: "Alice", Amount: decimal.RequireFromString("10.00")},
					{Name: "Bob", Amount: decimal.RequireFromString("10.00")},
				},
			},
			expectedError: errors.ErrSplitMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tripRepo := new(MockTripRepository)
			expenseRepo := new(MockExpenseRepository)
			tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)

			service := newExpenseServiceForTest(tripRepo, expenseRepo)
			expense, err := service.Create(context.Background(), userID, tripID, tt.input)

			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, expense)
			expenseRepo.AssertNotCalled(t, "CreateWithPayers", mock.Anything, mock.Anything)
		})
	}
}

func TestExpenseService_CreateTripNotFound(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	expenseRepo := new(MockExpenseRepository)
	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(nil, gorm.ErrRecordNotFound)

	service := newExpenseServiceForTest(tripRepo, expenseRepo)
	expense, err := service.Create(context.Background(), userID, tripID, ExpenseInput{
		Category: model.CategoryFood,
		Amount:   decimal.RequireFromString("10.00"),
		PaidBy:   "Alice",
	})

	assert.Equal(t, errors.ErrTripNotFound, err)
	assert.Nil(t, expense)
}
