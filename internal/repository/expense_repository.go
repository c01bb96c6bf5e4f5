package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safariplanner/internal/model"
)

// ExpenseRepository defines expense persistence operations. Writes that touch
// an expense together with its payer rows are transactional: a failure
// partway leaves neither behind.
type ExpenseRepository interface {
	CreateWithPayers(ctx context.Context, expense *model.Expense) error
	UpdateWithPayers(ctx context.Context, expense *model.Expense) error
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// CreateWithPayers creates an expense and its payer rows in one transaction.
func (r *expenseRepository) CreateWithPayers(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payers := expense.Payers
		expense.Payers = nil
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		for i := range payers {
			payers[i].ExpenseID = expense.ID
			if err := tx.Create(&payers[i]).Error; err != nil {
				return err
			}
		}
		expense.Payers = payers
		return nil
	})
}

// UpdateWithPayers saves an expense and replaces its payer rows in one
// transaction.
func (r *expenseRepository) UpdateWithPayers(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payers := expense.Payers
		expense.Payers = nil
		if err := tx.Save(expense).Error; err != nil {
			return err
		}
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&model.ExpensePayer{}).Error; err != nil {
			return err
		}
		for i := range payers {
			payers[i].ID = uuid.Nil
			payers[i].ExpenseID = expense.ID
			if err := tx.Create(&payers[i]).Error; err != nil {
				return err
			}
		}
		expense.Payers = payers
		return nil
	})
}

// FindByIDForOwner finds an expense with its payer rows, scoped to its owner.
func (r *expenseRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).
		Preload("Payers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByTrip lists a trip's expenses newest first, payer rows attached in
// creation order.
func (r *expenseRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).
		Preload("Payers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Delete removes an expense and its payer rows in one transaction.
func (r *expenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Expense{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("expense_id = ?", id).Delete(&model.ExpensePayer{}).Error
	})
}
