package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareAccessOutcome classifies a share resolution attempt.
type ShareAccessOutcome string

const (
	ShareAccessOK          ShareAccessOutcome = "ok"
	ShareAccessInvalid     ShareAccessOutcome = "invalid"
	ShareAccessNotFound    ShareAccessOutcome = "not_found"
	ShareAccessExpired     ShareAccessOutcome = "expired"
	ShareAccessRevoked     ShareAccessOutcome = "revoked"
	ShareAccessBadPasscode ShareAccessOutcome = "bad_passcode"
)

// ShareAccessLog records one share resolution attempt. Rows are written
// asynchronously; resolution itself never blocks on logging. ShareID is nil
// when the token matched no share.
type ShareAccessLog struct {
	ID          uuid.UUID          `json:"id" gorm:"type:char(36);primaryKey"`
	ShareID     *uuid.UUID         `json:"share_id,omitempty" gorm:"type:char(36);index"`
	TokenPrefix string             `json:"token_prefix" gorm:"size:8;not null"`
	Outcome     ShareAccessOutcome `json:"outcome" gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time          `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *ShareAccessLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
