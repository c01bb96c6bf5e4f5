package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
)

// DefaultTripName is given to the trip auto-created for a user with none.
const DefaultTripName = "My Safari Trip"

// TripService handles trip operations.
type TripService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Trip, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error)
	Rename(ctx context.Context, userID, tripID uuid.UUID, name string) (*model.Trip, error)
	SetWhatsappLink(ctx context.Context, userID, tripID uuid.UUID, link string) (*model.Trip, error)
	Select(ctx context.Context, userID, tripID uuid.UUID) error
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

type tripService struct {
	tripRepo repository.TripRepository
	loader   *TripDataLoader
}

// NewTripService creates a new trip service.
func NewTripService(tripRepo repository.TripRepository, loader *TripDataLoader) TripService {
	return &tripService{tripRepo: tripRepo, loader: loader}
}

// List returns the user's trips in most-recently-used order. A user with no
// trips gets a default one created so there is always a current trip.
func (s *tripService) List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error) {
	trips, err := s.tripRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if len(trips) == 0 {
		trip := &model.Trip{UserID: userID, Name: DefaultTripName}
		if err := s.tripRepo.Create(ctx, trip); err != nil {
			return nil, fmt.Errorf("create default trip: %w", err)
		}
		trips = []model.Trip{*trip}
	}
	return trips, nil
}

// Create creates a new trip for the user.
func (s *tripService) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTripName
	}
	trip := &model.Trip{UserID: userID, Name: name}
	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return trip, nil
}

// Get returns a trip owned by the user.
func (s *tripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error) {
	trip, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

// Rename updates the trip name.
func (s *tripService) Rename(ctx context.Context, userID, tripID uuid.UUID, name string) (*model.Trip, error) {
	trip, err := s.Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	trip.Name = strings.TrimSpace(name)
	if trip.Name == "" {
		trip.Name = DefaultTripName
	}
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return trip, nil
}

// SetWhatsappLink updates the trip's group chat link.
func (s *tripService) SetWhatsappLink(ctx context.Context, userID, tripID uuid.UUID, link string) (*model.Trip, error) {
	trip, err := s.Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	trip.WhatsappLink = strings.TrimSpace(link)
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return trip, nil
}

// Select marks the trip as current by bumping updated_at, which floats it to
// the top of the MRU listing.
func (s *tripService) Select(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.tripRepo.Touch(ctx, tripID, userID, time.Now()); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTripNotFound
		}
		return fmt.Errorf("touch trip: %w", err)
	}
	return nil
}

// Delete removes a trip with all attendees, expenses, schedule items and
// shares in one transaction.
func (s *tripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.tripRepo.DeleteCascade(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTripNotFound
		}
		return fmt.Errorf("delete trip: %w", err)
	}
	s.loader.Invalidate(ctx, tripID)
	return nil
}
