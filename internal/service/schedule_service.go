package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
)

// ScheduleInput carries the editable schedule item fields. Date is
// "2006-01-02" and Time, when set, is "15:04".
type ScheduleInput struct {
	Title       string
	Date        string
	Time        string
	Description string
}

// ScheduleService handles schedule item operations.
type ScheduleService interface {
	List(ctx context.Context, userID, tripID uuid.UUID) ([]model.ScheduleItem, error)
	Create(ctx context.Context, userID, tripID uuid.UUID, in ScheduleInput) (*model.ScheduleItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, in ScheduleInput) (*model.ScheduleItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	AddPicture(ctx context.Context, userID, itemID uuid.UUID, pictureURL string) (*model.ScheduleItem, error)
	RemovePicture(ctx context.Context, userID, itemID uuid.UUID, index int) (*model.ScheduleItem, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	tripRepo     repository.TripRepository
	loader       *TripDataLoader
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, tripRepo repository.TripRepository, loader *TripDataLoader) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, tripRepo: tripRepo, loader: loader}
}

// List returns a trip's schedule items in date order.
func (s *scheduleService) List(ctx context.Context, userID, tripID uuid.UUID) ([]model.ScheduleItem, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return s.scheduleRepo.ListByTrip(ctx, tripID)
}

// Create adds a schedule item to a trip the user owns.
func (s *scheduleService) Create(ctx context.Context, userID, tripID uuid.UUID, in ScheduleInput) (*model.ScheduleItem, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	if err := validateScheduleInput(in); err != nil {
		return nil, err
	}

	item := &model.ScheduleItem{
		TripID:      tripID,
		UserID:      userID,
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		Pictures:    model.PictureList{},
	}
	if err := s.scheduleRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create schedule item: %w", err)
	}
	s.loader.Invalidate(ctx, tripID)
	return item, nil
}

// Update edits a schedule item's fields, leaving its pictures untouched.
func (s *scheduleService) Update(ctx context.Context, userID, itemID uuid.UUID, in ScheduleInput) (*model.ScheduleItem, error) {
	item, err := s.scheduleRepo.FindByIDForOwner(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrScheduleItemNotFound
		}
		return nil, fmt.Errorf("find schedule item: %w", err)
	}
	if err := validateScheduleInput(in); err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Date = in.Date
	item.Time = in.Time
	item.Description = in.Description
	if err := s.scheduleRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update schedule item: %w", err)
	}
	s.loader.Invalidate(ctx, item.TripID)
	return item, nil
}

// Delete removes a schedule item.
func (s *scheduleService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.scheduleRepo.FindByIDForOwner(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrScheduleItemNotFound
		}
		return fmt.Errorf("find schedule item: %w", err)
	}
	if err := s.scheduleRepo.Delete(ctx, itemID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrScheduleItemNotFound
		}
		return fmt.Errorf("delete schedule item: %w", err)
	}
	s.loader.Invalidate(ctx, item.TripID)
	return nil
}

// AddPicture appends a picture URL to a schedule item.
func (s *scheduleService) AddPicture(ctx context.Context, userID, itemID uuid.UUID, pictureURL string) (*model.ScheduleItem, error) {
	item, err := s.scheduleRepo.FindByIDForOwner(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrScheduleItemNotFound
		}
		return nil, fmt.Errorf("find schedule item: %w", err)
	}

	item.Pictures = append(item.Pictures, pictureURL)
	if err := s.scheduleRepo.UpdatePictures(ctx, itemID, userID, item.Pictures); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrScheduleItemNotFound
		}
		return nil, fmt.Errorf("update pictures: %w", err)
	}
	s.loader.Invalidate(ctx, item.TripID)
	return item, nil
}

// RemovePicture drops the picture at the given index. Out-of-range indexes
// are a no-op so repeated removals stay safe.
func (s *scheduleService) RemovePicture(ctx context.Context, userID, itemID uuid.UUID, index int) (*model.ScheduleItem, error) {
	item, err := s.scheduleRepo.FindByIDForOwner(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrScheduleItemNotFound
		}
		return nil, fmt.Errorf("find schedule item: %w", err)
	}
	if index < 0 || index >= len(item.Pictures) {
		return item, nil
	}

	item.Pictures = append(item.Pictures[:index], item.Pictures[index+1:]...)
	if err := s.scheduleRepo.UpdatePictures(ctx, itemID, userID, item.Pictures); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrScheduleItemNotFound
		}
		return nil, fmt.Errorf("update pictures: %w", err)
	}
	s.loader.Invalidate(ctx, item.TripID)
	return item, nil
}

func validateScheduleInput(in ScheduleInput) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return errors.ErrInvalidDate
	}
	if in.Time != "" {
		if _, err := time.Parse("15:04", in.Time); err != nil {
			return errors.ErrInvalidDate
		}
	}
	return nil
}
