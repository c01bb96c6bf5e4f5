package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryAccommodation ExpenseCategory = "accommodation"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryOther         ExpenseCategory = "other"
)

// Categories lists every valid expense category.
var Categories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PaidByMultiple is the denormalized paid_by label used when an expense is
// split across more than one payer. The per-payer breakdown lives in
// ExpensePayer rows; paid_by is a display convenience, not a source of truth.
const PaidByMultiple = "Multiple"

// Expense is a shared cost recorded against a trip.
type Expense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TripID      uuid.UUID       `json:"trip_id" gorm:"type:char(36);not null;index"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Category    ExpenseCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	PaidBy      string          `json:"paid_by" gorm:"size:255;not null"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relations
	Payers []ExpensePayer `json:"payers,omitempty" gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExpensePayer is one payer's slice of an expense. PayerName is a snapshot:
// it stays meaningful after the attendee row is deleted, in which case
// AttendeeID goes null. Invariant: the payer amounts of an expense sum to the
// expense amount within a cent.
type ExpensePayer struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	ExpenseID  uuid.UUID       `json:"expense_id" gorm:"type:char(36);not null;index"`
	AttendeeID *uuid.UUID      `json:"attendee_id,omitempty" gorm:"type:char(36);index"`
	PayerName  string          `json:"payer_name" gorm:"size:255;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *ExpensePayer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PublicExpense is the field-limited projection exposed through share links.
type PublicExpense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	PaidBy      string          `json:"paid_by"`
	Payers      string          `json:"payers,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
