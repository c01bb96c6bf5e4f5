package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"safariplanner/internal/model"
)

func expense(category model.ExpenseCategory, amount string) model.Expense {
	return model.Expense{
		ID:       uuid.New(),
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestCategoryTotalsRollUpToGrandTotal(t *testing.T) {
	expenses := []model.Expense{
		expense(model.CategoryFood, "120.50"),
		expense(model.CategoryFood, "35.25"),
		expense(model.CategoryTransport, "300.00"),
		expense(model.CategoryAccommodation, "899.99"),
		expense(model.CategoryShopping, "42.01"),
		expense(model.CategoryOther, "0.75"),
	}

	rolled := decimal.Zero
	for _, c := range model.Categories {
		rolled = rolled.Add(CategoryTotal(expenses, c))
	}
	assert.True(t, rolled.Equal(GrandTotal(expenses)),
		"category totals sum to %s, grand total %s", rolled, GrandTotal(expenses))
	assert.True(t, GrandTotal(expenses).Equal(decimal.RequireFromString("1398.50")))
}

func TestEmptyCollectionSafety(t *testing.T) {
	var none []model.Expense
	assert.True(t, Average(none).IsZero())
	assert.True(t, MaxExpense(none).IsZero())
	assert.True(t, GrandTotal(none).IsZero())
	assert.Empty(t, CategoryBreakdown(none))
}

func TestAverageAndMax(t *testing.T) {
	expenses := []model.Expense{
		expense(model.CategoryFood, "10.00"),
		expense(model.CategoryFood, "20.00"),
		expense(model.CategoryTransport, "60.00"),
	}
	assert.True(t, Average(expenses).Equal(decimal.RequireFromString("30.00")))
	assert.True(t, MaxExpense(expenses).Equal(decimal.RequireFromString("60.00")))
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []model.Expense{
		expense(model.CategoryFood, "10.00"),
		expense(model.CategoryFood, "5.50"),
		expense(model.CategoryTransport, "40.00"),
	}
	breakdown := CategoryBreakdown(expenses)

	assert.Len(t, breakdown, 2)
	assert.Equal(t, 2, breakdown[model.CategoryFood].Count)
	assert.True(t, breakdown[model.CategoryFood].Total.Equal(decimal.RequireFromString("15.50")))
	assert.Equal(t, 1, breakdown[model.CategoryTransport].Count)
}

func TestPayerSummary(t *testing.T) {
	t.Run("falls back to paid_by without payer rows", func(t *testing.T) {
		e := expense(model.CategoryFood, "50.00")
		e.PaidBy = "Amina"
		assert.Equal(t, "Amina", PayerSummary(e))
	})

	t.Run("renders payer rows in creation order, ignoring paid_by", func(t *testing.T) {
		e := expense(model.CategoryFood, "50.00")
		e.PaidBy = "Multiple"
		e.Payers = []model.ExpensePayer{
			{PayerName: "Amina", Amount: decimal.RequireFromString("25.00")},
			{PayerName: "Karim", Amount: decimal.RequireFromString("25.00")},
		}
		assert.Equal(t, "Amina (25.00), Karim (25.00)", PayerSummary(e))
	})
}
