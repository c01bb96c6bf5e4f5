package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"safariplanner/internal/cache"
	"safariplanner/internal/model"
)

func newTestExpense(category model.ExpenseCategory, amount, paidBy, description string) model.Expense {
	return model.Expense{
		ID:          uuid.New(),
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		PaidBy:      paidBy,
		Description: description,
	}
}

type csvServiceFixture struct {
	tripRepo     *MockTripRepository
	attendeeRepo *MockAttendeeRepository
	expenseRepo  *MockExpenseRepository
	scheduleRepo *MockScheduleRepository
	service      CSVService
}

func newCSVServiceFixture() *csvServiceFixture {
	f := &csvServiceFixture{
		tripRepo:     new(MockTripRepository),
		attendeeRepo: new(MockAttendeeRepository),
		expenseRepo:  new(MockExpenseRepository),
		scheduleRepo: new(MockScheduleRepository),
	}
	loader := NewTripDataLoader(f.attendeeRepo, f.expenseRepo, f.scheduleRepo, new(cache.Client))
	attendeeService := NewAttendeeService(f.attendeeRepo, f.tripRepo, loader)
	expenseService := NewExpenseService(f.expenseRepo, f.tripRepo, loader)
	scheduleService := NewScheduleService(f.scheduleRepo, f.tripRepo, loader)
	f.service = NewCSVService(f.tripRepo, loader, attendeeService, expenseService, scheduleService)
	return f
}

func TestCSVService_ImportSkipsMalformedRows(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	f := newCSVServiceFixture()
	f.tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	f.attendeeRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Attendee")).Return(nil)
	f.expenseRepo.On("CreateWithPayers", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)
	f.scheduleRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ScheduleItem")).Return(nil)

	input := strings.Join([]string{
		"Type,Name,Email,Phone",
		"attendee,Alice,alice@example.com,555-0100",
		"attendee,,missing-name@example.com,",
		"Type,Description,Category,Amount,PaidBy",
		"expense,Park fees,other,120.00,Alice",
		"expense,Broken amount,food,not-a-number,Bob",
		"expense,Bad category,gambling,10.00,Bob",
		"Type,Title,Date,Time,Description",
		"schedule,Game drive,2026-03-16,06:00,Early start",
		"schedule,Bad date,16/03/2026,,",
		"mystery,who,knows",
		"",
	}, "\n")

	result, err := f.service.Import(context.Background(), userID, tripID, strings.NewReader(input))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Attendees)
	assert.Equal(t, 1, result.Expenses)
	assert.Equal(t, 1, result.ScheduleItems)
	assert.Len(t, result.SkippedLines, 5)
}

func TestCSVService_ExportRoundTrip(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	exportFixture := newCSVServiceFixture()
	exportFixture.tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	exportFixture.attendeeRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.Attendee{
		{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Phone: "555-0100"},
		{ID: uuid.New(), Name: "Bob"},
	}, nil)
	exportFixture.expenseRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.Expense{
		newTestExpense(model.CategoryFood, "45.50", "Alice", "Lunch, with drinks"),
	}, nil)
	exportFixture.scheduleRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.ScheduleItem{
		{ID: uuid.New(), Title: "Game drive", Date: "2026-03-16", Time: "06:00"},
	}, nil)

	data, err := exportFixture.service.Export(context.Background(), userID, tripID)
	assert.NoError(t, err)

	importFixture := newCSVServiceFixture()
	importFixture.tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID}, nil)
	importFixture.attendeeRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Attendee")).Return(nil)
	importFixture.expenseRepo.On("CreateWithPayers", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)
	importFixture.scheduleRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ScheduleItem")).Return(nil)

	result, err := importFixture.service.Import(context.Background(), userID, tripID, strings.NewReader(string(data)))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Attendees)
	assert.Equal(t, 1, result.Expenses)
	assert.Equal(t, 1, result.ScheduleItems)
	assert.Empty(t, result.SkippedLines)
}
