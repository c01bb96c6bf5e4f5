package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendee belongs to exactly one trip. Presence implies confirmation;
// there is no separate confirmed flag in the persisted schema.
type Attendee struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TripID    uuid.UUID `json:"trip_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email,omitempty" gorm:"size:255"`
	Phone     string    `json:"phone,omitempty" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Attendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// PublicAttendee is the field-limited projection exposed through share links.
type PublicAttendee struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
