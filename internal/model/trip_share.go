package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TripShare grants scoped, field-limited read access to a trip without
// authentication. A share is usable iff it has not been revoked, has not
// passed its expiry, and the caller supplies the passcode when one is set.
type TripShare struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	TripID           uuid.UUID  `json:"trip_id" gorm:"type:char(36);not null;index"`
	CreatedBy        uuid.UUID  `json:"created_by" gorm:"type:char(36);not null;index"`
	Token            string     `json:"token" gorm:"size:64;uniqueIndex;not null"`
	PasscodeHash     string     `json:"-" gorm:"size:255"` // bcrypt hash, empty when no passcode
	CanViewAttendees bool       `json:"can_view_attendees" gorm:"not null;default:true"`
	CanViewExpenses  bool       `json:"can_view_expenses" gorm:"not null;default:true"`
	CanViewSchedule  bool       `json:"can_view_schedule" gorm:"not null;default:true"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *TripShare) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Usable reports whether the share is still valid at the given instant,
// ignoring the passcode check.
func (s *TripShare) Usable(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	if s.ExpiresAt != nil && !s.ExpiresAt.After(now) {
		return false
	}
	return true
}
