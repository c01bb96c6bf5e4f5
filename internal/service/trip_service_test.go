package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"safariplanner/internal/cache"
	"safariplanner/internal/model"
)

func newTripServiceForTest(tripRepo *MockTripRepository) TripService {
	loader := NewTripDataLoader(new(MockAttendeeRepository), new(MockExpenseRepository), new(MockScheduleRepository), new(cache.Client))
	return NewTripService(tripRepo, loader)
}

func TestTripService_ListCreatesDefaultTrip(t *testing.T) {
	userID := uuid.New()

	tripRepo := new(MockTripRepository)
	tripRepo.On("ListByOwner", mock.Anything, userID).Return([]model.Trip{}, nil)
	tripRepo.On("Create", mock.Anything, mock.MatchedBy(func(trip *model.Trip) bool {
		return trip.UserID == userID && trip.Name == DefaultTripName
	})).Return(nil)

	service := newTripServiceForTest(tripRepo)
	trips, err := service.List(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, trips, 1)
	assert.Equal(t, DefaultTripName, trips[0].Name)
	tripRepo.AssertExpectations(t)
}

func TestTripService_ListKeepsExistingOrder(t *testing.T) {
	userID := uuid.New()
	existing := []model.Trip{
		{ID: uuid.New(), UserID: userID, Name: "Kenya 2026"},
		{ID: uuid.New(), UserID: userID, Name: "Tanzania 2025"},
	}

	tripRepo := new(MockTripRepository)
	tripRepo.On("ListByOwner", mock.Anything, userID).Return(existing, nil)

	service := newTripServiceForTest(tripRepo)
	trips, err := service.List(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, existing, trips)
	tripRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTripService_CreateBlankNameFallsBack(t *testing.T) {
	userID := uuid.New()

	tripRepo := new(MockTripRepository)
	tripRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Trip")).Return(nil)

	service := newTripServiceForTest(tripRepo)
	trip, err := service.Create(context.Background(), userID, "   ")

	assert.NoError(t, err)
	assert.Equal(t, DefaultTripName, trip.Name)
}
