package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/model"
)

// TripRepository defines trip persistence operations. Reads and writes are
// scoped to the owning user, except FindByID which backs share resolution.
type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	Update(ctx context.Context, trip *model.Trip) error
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Trip, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Trip, error)
	Touch(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	DeleteCascade(ctx context.Context, id, userID uuid.UUID) error
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

// Create creates a new trip.
func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

// Update updates an existing trip.
func (r *tripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// FindByIDForOwner finds a trip by ID scoped to its owner.
func (r *tripRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindByID finds a trip by ID without an owner check. Used by share
// resolution, where access is granted by the share itself.
func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// ListByOwner lists the user's trips, most recently used first.
func (r *tripRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// Touch bumps updated_at so the trip floats to the top of the MRU ordering.
func (r *tripRepository) Touch(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Trip{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade deletes a trip and all of its children in one transaction.
func (r *tripRepository) DeleteCascade(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip model.Trip
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&trip).Error; err != nil {
			return err
		}

		var expenseIDs []uuid.UUID
		if err := tx.Model(&model.Expense{}).
			Where("trip_id = ?", id).
			Pluck("id", &expenseIDs).Error; err != nil {
			return err
		}
		if len(expenseIDs) > 0 {
			if err := tx.Where("expense_id IN ?", expenseIDs).Delete(&model.ExpensePayer{}).Error; err != nil {
				return err
			}
		}

		for _, child := range []interface{}{
			&model.Expense{},
			&model.Attendee{},
			&model.ScheduleItem{},
			&model.TripShare{},
		} {
			if err := tx.Where("trip_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&trip).Error
	})
}
