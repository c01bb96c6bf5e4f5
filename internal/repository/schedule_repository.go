package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/model"
)

// ScheduleRepository defines schedule item persistence operations.
type ScheduleRepository interface {
	Create(ctx context.Context, item *model.ScheduleItem) error
	Update(ctx context.Context, item *model.ScheduleItem) error
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.ScheduleItem, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ScheduleItem, error)
	UpdatePictures(ctx context.Context, id, userID uuid.UUID, pictures model.PictureList) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create creates a new schedule item.
func (r *scheduleRepository) Create(ctx context.Context, item *model.ScheduleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update updates an existing schedule item.
func (r *scheduleRepository) Update(ctx context.Context, item *model.ScheduleItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByIDForOwner finds a schedule item by ID scoped to its owner.
func (r *scheduleRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.ScheduleItem, error) {
	var item model.ScheduleItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByTrip lists a trip's schedule items in date order.
func (r *scheduleRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ScheduleItem, error) {
	var items []model.ScheduleItem
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdatePictures replaces only the pictures column, leaving other fields
// untouched.
func (r *scheduleRepository) UpdatePictures(ctx context.Context, id, userID uuid.UUID, pictures model.PictureList) error {
	res := r.db.WithContext(ctx).Model(&model.ScheduleItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("pictures", pictures)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a schedule item.
func (r *scheduleRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ScheduleItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
