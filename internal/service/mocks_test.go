package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"safariplanner/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *model.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Trip, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Trip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockTripRepository) Touch(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, userID, at)
	return args.Error(0)
}

func (m *MockTripRepository) DeleteCascade(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockAttendeeRepository is a mock implementation of AttendeeRepository.
type MockAttendeeRepository struct {
	mock.Mock
}

func (m *MockAttendeeRepository) Create(ctx context.Context, attendee *model.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *MockAttendeeRepository) Update(ctx context.Context, attendee *model.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *MockAttendeeRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Attendee, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendee), args.Error(1)
}

func (m *MockAttendeeRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Attendee, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendee), args.Error(1)
}

func (m *MockAttendeeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) CreateWithPayers(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateWithPayers(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockScheduleRepository is a mock implementation of ScheduleRepository.
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, item *model.ScheduleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, item *model.ScheduleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.ScheduleItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleItem), args.Error(1)
}

func (m *MockScheduleRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ScheduleItem, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScheduleItem), args.Error(1)
}

func (m *MockScheduleRepository) UpdatePictures(ctx context.Context, id, userID uuid.UUID, pictures model.PictureList) error {
	args := m.Called(ctx, id, userID, pictures)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockShareRepository is a mock implementation of ShareRepository.
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, share *model.TripShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) FindByToken(ctx context.Context, token string) (*model.TripShare, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TripShare), args.Error(1)
}

func (m *MockShareRepository) ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]model.TripShare, error) {
	args := m.Called(ctx, tripID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TripShare), args.Error(1)
}

func (m *MockShareRepository) Revoke(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, userID, at)
	return args.Error(0)
}

func (m *MockShareRepository) CreateAccessLogs(ctx context.Context, logs []model.ShareAccessLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
