// Package report derives display-ready figures from a trip's in-memory
// collections. Everything is recomputed on demand from the full lists; record
// counts per trip are small, so there is no incremental maintenance.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"safariplanner/internal/model"
)

// CategoryTotal sums the amounts of expenses in the given category.
func CategoryTotal(expenses []model.Expense, category model.ExpenseCategory) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == category {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// GrandTotal sums all expense amounts.
func GrandTotal(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Average returns the mean expense amount, or zero for an empty list.
func Average(expenses []model.Expense) decimal.Decimal {
	if len(expenses) == 0 {
		return decimal.Zero
	}
	return GrandTotal(expenses).Div(decimal.NewFromInt(int64(len(expenses)))).Round(2)
}

// MaxExpense returns the largest single expense amount, or zero for an empty list.
func MaxExpense(expenses []model.Expense) decimal.Decimal {
	max := decimal.Zero
	for _, e := range expenses {
		if e.Amount.GreaterThan(max) {
			max = e.Amount
		}
	}
	return max
}

// CategoryBreakdown returns per-category totals and expense counts, keyed by
// category, for every category present in the list.
func CategoryBreakdown(expenses []model.Expense) map[model.ExpenseCategory]CategoryFigures {
	out := make(map[model.ExpenseCategory]CategoryFigures)
	for _, e := range expenses {
		fig := out[e.Category]
		fig.Total = fig.Total.Add(e.Amount)
		fig.Count++
		out[e.Category] = fig
	}
	return out
}

// CategoryFigures are the rolled-up figures for one expense category.
type CategoryFigures struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// PayerSummary renders an expense's payer breakdown as "name (amount)"
// entries joined by ", ", in payer row creation order. Expenses recorded
// before multi-payer support have no payer rows and fall back to the
// denormalized paid_by label; that fallback is mandatory.
func PayerSummary(e model.Expense) string {
	if len(e.Payers) == 0 {
		return e.PaidBy
	}
	parts := make([]string, len(e.Payers))
	for i, p := range e.Payers {
		parts[i] = fmt.Sprintf("%s (%s)", p.PayerName, p.Amount.StringFixed(2))
	}
	return strings.Join(parts, ", ")
}
