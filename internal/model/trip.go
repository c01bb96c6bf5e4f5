package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trip is the top-level container owning attendees, expenses and schedule
// items for one planned journey. Trips are ordered most-recently-used:
// selecting a trip bumps UpdatedAt.
type Trip struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	WhatsappLink string    `json:"whatsapp_link,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Attendees     []Attendee     `json:"-" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	Expenses      []Expense      `json:"-" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	ScheduleItems []ScheduleItem `json:"-" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	Shares        []TripShare    `json:"-" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
