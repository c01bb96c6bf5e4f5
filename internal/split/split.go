// Package split computes and validates per-payer amount assignments for a
// multi-payer expense. All functions are pure; persistence is the caller's
// responsibility.
package split

import (
	"github.com/shopspring/decimal"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
)

// Tolerance absorbs decimal-string round-off when validating a split. It is
// not meant to permit real discrepancies.
var Tolerance = decimal.NewFromFloat(0.01)

// Share is one payer's assignment within a split. Order matters: shares keep
// the selection order of the payers.
type Share struct {
	PayerName string
	Amount    decimal.Decimal
}

// Equal assigns total across the given shares in place. Every payer except
// the last receives total/n truncated to two decimals; the last payer
// receives the exact remainder so the shares always sum to the total to the
// cent. An empty share list is a no-op.
func Equal(total decimal.Decimal, shares []Share) {
	n := len(shares)
	if n == 0 {
		return
	}
	per := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	assigned := decimal.Zero
	for i := range shares[:n-1] {
		shares[i].Amount = per
		assigned = assigned.Add(per)
	}
	shares[n-1].Amount = total.Sub(assigned)
}

// Validate checks a split before it is persisted: at least one payer must be
// selected and the assigned amounts must sum to the total within Tolerance.
func Validate(total decimal.Decimal, shares []Share) error {
	if len(shares) == 0 {
		return errors.ErrEmptySplit
	}
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(Tolerance) {
		return errors.ErrSplitMismatch
	}
	return nil
}

// PaidByLabel derives the denormalized paid_by display label: the payer's
// name for a single payer, the literal "Multiple" otherwise.
func PaidByLabel(shares []Share) string {
	if len(shares) == 1 {
		return shares[0].PayerName
	}
	return model.PaidByMultiple
}
