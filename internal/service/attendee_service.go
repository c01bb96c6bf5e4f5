package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
)

// AttendeeInput carries the editable attendee fields.
type AttendeeInput struct {
	Name  string
	Email string
	Phone string
}

// AttendeeService handles attendee operations.
type AttendeeService interface {
	List(ctx context.Context, userID, tripID uuid.UUID) ([]model.Attendee, error)
	Create(ctx context.Context, userID, tripID uuid.UUID, in AttendeeInput) (*model.Attendee, error)
	Update(ctx context.Context, userID, attendeeID uuid.UUID, in AttendeeInput) (*model.Attendee, error)
	Delete(ctx context.Context, userID, attendeeID uuid.UUID) error
}

type attendeeService struct {
	attendeeRepo repository.AttendeeRepository
	tripRepo     repository.TripRepository
	loader       *TripDataLoader
}

// NewAttendeeService creates a new attendee service.
func NewAttendeeService(attendeeRepo repository.AttendeeRepository, tripRepo repository.TripRepository, loader *TripDataLoader) AttendeeService {
	return &attendeeService{attendeeRepo: attendeeRepo, tripRepo: tripRepo, loader: loader}
}

// List returns a trip's attendees in creation order.
func (s *attendeeService) List(ctx context.Context, userID, tripID uuid.UUID) ([]model.Attendee, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return s.attendeeRepo.ListByTrip(ctx, tripID)
}

// Create adds an attendee to a trip the user owns.
func (s *attendeeService) Create(ctx context.Context, userID, tripID uuid.UUID, in AttendeeInput) (*model.Attendee, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	attendee := &model.Attendee{
		TripID: tripID,
		UserID: userID,
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
	}
	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		return nil, fmt.Errorf("create attendee: %w", err)
	}
	s.loader.Invalidate(ctx, tripID)
	return attendee, nil
}

// Update edits an attendee's fields.
func (s *attendeeService) Update(ctx context.Context, userID, attendeeID uuid.UUID, in AttendeeInput) (*model.Attendee, error) {
	attendee, err := s.attendeeRepo.FindByIDForOwner(ctx, attendeeID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("find attendee: %w", err)
	}

	attendee.Name = in.Name
	attendee.Email = in.Email
	attendee.Phone = in.Phone
	if err := s.attendeeRepo.Update(ctx, attendee); err != nil {
		return nil, fmt.Errorf("update attendee: %w", err)
	}
	s.loader.Invalidate(ctx, attendee.TripID)
	return attendee, nil
}

// Delete removes an attendee. Expense payer rows keep the name snapshot.
func (s *attendeeService) Delete(ctx context.Context, userID, attendeeID uuid.UUID) error {
	attendee, err := s.attendeeRepo.FindByIDForOwner(ctx, attendeeID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAttendeeNotFound
		}
		return fmt.Errorf("find attendee: %w", err)
	}

	if err := s.attendeeRepo.Delete(ctx, attendeeID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAttendeeNotFound
		}
		return fmt.Errorf("delete attendee: %w", err)
	}
	s.loader.Invalidate(ctx, attendee.TripID)
	return nil
}
