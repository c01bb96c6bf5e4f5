package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/model"
)

// AttendeeRepository defines attendee persistence operations.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *model.Attendee) error
	Update(ctx context.Context, attendee *model.Attendee) error
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Attendee, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Attendee, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type attendeeRepository struct {
	db *gorm.DB
}

// NewAttendeeRepository creates a new attendee repository.
func NewAttendeeRepository(db *gorm.DB) AttendeeRepository {
	return &attendeeRepository{db: db}
}

// Create creates a new attendee.
func (r *attendeeRepository) Create(ctx context.Context, attendee *model.Attendee) error {
	return r.db.WithContext(ctx).Create(attendee).Error
}

// Update updates an existing attendee.
func (r *attendeeRepository) Update(ctx context.Context, attendee *model.Attendee) error {
	return r.db.WithContext(ctx).Save(attendee).Error
}

// FindByIDForOwner finds an attendee by ID scoped to its owner.
func (r *attendeeRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Attendee, error) {
	var attendee model.Attendee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attendee).Error; err != nil {
		return nil, err
	}
	return &attendee, nil
}

// ListByTrip lists a trip's attendees in creation order.
func (r *attendeeRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Attendee, error) {
	var attendees []model.Attendee
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// Delete removes an attendee. Payer rows referencing the attendee keep their
// name snapshot; the attendee reference is detached first.
func (r *attendeeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ExpensePayer{}).
			Where("attendee_id = ?", id).
			Update("attendee_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Attendee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
