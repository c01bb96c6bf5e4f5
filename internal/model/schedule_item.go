package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PictureList is an ordered list of image URLs stored as a JSON column.
type PictureList []string

// Value implements driver.Valuer.
func (p PictureList) Value() (driver.Value, error) {
	if p == nil {
		p = PictureList{}
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PictureList) Scan(value interface{}) error {
	if value == nil {
		*p = PictureList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported picture list type %T", value)
	}
}

// ScheduleItem is a dated, optionally timed activity on a trip's schedule.
// Date is an ISO calendar date (2006-01-02); Time is an optional clock time
// (15:04) and blank means the time is unset.
type ScheduleItem struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	TripID      uuid.UUID   `json:"trip_id" gorm:"type:char(36);not null;index"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:char(36);not null;index"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Date        string      `json:"date" gorm:"type:varchar(10);not null;index"`
	Time        string      `json:"time,omitempty" gorm:"type:varchar(5)"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Pictures    PictureList `json:"pictures" gorm:"type:json"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *ScheduleItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StartsAt combines Date and Time into a comparable instant. A blank Time is
// treated as midnight. The second return value is false when Date does not
// parse.
func (s *ScheduleItem) StartsAt() (time.Time, bool) {
	clock := s.Time
	if clock == "" {
		clock = "00:00"
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", s.Date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// PublicScheduleItem is the field-limited projection exposed through share links.
type PublicScheduleItem struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Time  string    `json:"time,omitempty"`
}
