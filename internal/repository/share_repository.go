package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/model"
)

// ShareRepository defines trip share persistence operations.
type ShareRepository interface {
	Create(ctx context.Context, share *model.TripShare) error
	FindByToken(ctx context.Context, token string) (*model.TripShare, error)
	ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]model.TripShare, error)
	Revoke(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	CreateAccessLogs(ctx context.Context, logs []model.ShareAccessLog) error
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository.
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

// Create creates a new trip share.
func (r *shareRepository) Create(ctx context.Context, share *model.TripShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

// FindByToken finds a share by exact token match. Token lookup is
// unauthenticated; callers must check usability and passcode themselves.
func (r *shareRepository) FindByToken(ctx context.Context, token string) (*model.TripShare, error) {
	var share model.TripShare
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// ListByTrip lists a trip's shares for its owner, newest first.
func (r *shareRepository) ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]model.TripShare, error) {
	var shares []model.TripShare
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND created_by = ?", tripID, userID).
		Order("created_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// Revoke stamps revoked_at on a share owned by the user. Revoking an already
// revoked share keeps the original timestamp.
func (r *shareRepository) Revoke(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.TripShare{}).
		Where("id = ? AND created_by = ? AND revoked_at IS NULL", id, userID).
		Update("revoked_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAccessLogs inserts access log rows in a single batch.
func (r *shareRepository) CreateAccessLogs(ctx context.Context, logs []model.ShareAccessLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}
