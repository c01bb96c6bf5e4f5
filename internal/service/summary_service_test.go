package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"safariplanner/internal/cache"
	"safariplanner/internal/errors"
	"safariplanner/internal/model"
)

func TestSummaryService_SummaryFigures(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	attendeeRepo := new(MockAttendeeRepository)
	expenseRepo := new(MockExpenseRepository)
	scheduleRepo := new(MockScheduleRepository)

	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(&model.Trip{ID: tripID, UserID: userID, Name: "Kenya 2026"}, nil)
	attendeeRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.Attendee{
		{Name: "Alice"}, {Name: "Bob"},
	}, nil)
	expenseRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.Expense{
		newTestExpense(model.CategoryFood, "40.00", "Alice", "Lunch"),
		newTestExpense(model.CategoryTransport, "60.00", "Bob", "Fuel"),
	}, nil)
	scheduleRepo.On("ListByTrip", mock.Anything, tripID).Return([]model.ScheduleItem{
		{Title: "Game drive", Date: "2026-03-16", Time: "06:00"},
	}, nil)

	loader := NewTripDataLoader(attendeeRepo, expenseRepo, scheduleRepo, new(cache.Client))
	service := NewSummaryService(tripRepo, loader, new(cache.Client)).(*summaryService)
	service.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	summary, err := service.Summary(context.Background(), userID, tripID)

	assert.NoError(t, err)
	assert.Equal(t, "Kenya 2026", summary.TripName)
	assert.Equal(t, 100, summary.Progress)
	assert.Equal(t, 2, summary.AttendeeCount)
	assert.Equal(t, "100", summary.TotalSpent.String())
	assert.Equal(t, "50", summary.AverageExpense.String())
	assert.Equal(t, "60", summary.LargestExpense.String())
	assert.Equal(t, 1, summary.UpcomingCount)
	assert.Equal(t, "Game drive", summary.NextUpcoming.Title)
	assert.Len(t, summary.ByCategory, 2)
}

func TestSummaryService_SummaryTripNotFound(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	tripRepo := new(MockTripRepository)
	tripRepo.On("FindByIDForOwner", mock.Anything, tripID, userID).Return(nil, errors.ErrTripNotFound)

	loader := NewTripDataLoader(new(MockAttendeeRepository), new(MockExpenseRepository), new(MockScheduleRepository), new(cache.Client))
	service := NewSummaryService(tripRepo, loader, new(cache.Client))

	summary, err := service.Summary(context.Background(), userID, tripID)

	assert.Error(t, err)
	assert.Nil(t, summary)
}
