package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"safariplanner/internal/errors"
)

func shares(names ...string) []Share {
	out := make([]Share, len(names))
	for i, n := range names {
		out[i] = Share{PayerName: n}
	}
	return out
}

func sum(ss []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range ss {
		total = total.Add(s.Amount)
	}
	return total
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		payers  []string
		want    []string
	}{
		{
			name:   "even division",
			total:  "90.00",
			payers: []string{"Amina", "Karim", "Yassine"},
			want:   []string{"30", "30", "30"},
		},
		{
			name:   "remainder lands on last payer",
			total:  "100.00",
			payers: []string{"Amina", "Karim", "Yassine"},
			want:   []string{"33.33", "33.33", "33.34"},
		},
		{
			name:   "two payers odd cent",
			total:  "0.01",
			payers: []string{"Amina", "Karim"},
			want:   []string{"0", "0.01"},
		},
		{
			name:   "single payer takes everything",
			total:  "57.89",
			payers: []string{"Amina"},
			want:   []string{"57.89"},
		},
		{
			name:   "zero total",
			total:  "0",
			payers: []string{"Amina", "Karim"},
			want:   []string{"0", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			ss := shares(tt.payers...)
			Equal(total, ss)

			for i, want := range tt.want {
				assert.True(t, ss[i].Amount.Equal(decimal.RequireFromString(want)),
					"payer %d = %s, want %s", i, ss[i].Amount, want)
			}
			assert.True(t, sum(ss).Equal(total), "shares sum to %s, want %s", sum(ss), total)
		})
	}
}

func TestEqual_EmptyIsNoop(t *testing.T) {
	var ss []Share
	Equal(decimal.RequireFromString("10.00"), ss)
	assert.Empty(t, ss)
}

// Every payer but the last gets the truncated per-head amount and the shares
// always sum exactly to the total, across a sweep of totals and group sizes.
func TestEqual_ExactnessSweep(t *testing.T) {
	totals := []string{"0.01", "0.10", "1.00", "9.99", "10.01", "33.33", "99.97", "100.00", "123.45", "2500.07"}
	for _, ts := range totals {
		total := decimal.RequireFromString(ts)
		for n := 1; n <= 7; n++ {
			ss := make([]Share, n)
			Equal(total, ss)

			per := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
			for i := 0; i < n-1; i++ {
				assert.True(t, ss[i].Amount.Equal(per),
					"total=%s n=%d payer %d = %s, want %s", ts, n, i, ss[i].Amount, per)
			}
			assert.True(t, sum(ss).Equal(total), "total=%s n=%d sum=%s", ts, n, sum(ss))
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		amounts []string
		wantErr error
	}{
		{
			name:    "exact sum",
			total:   "100.00",
			amounts: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:    "within tolerance",
			total:   "100.00",
			amounts: []string{"50.00", "50.01"},
		},
		{
			name:    "over tolerance",
			total:   "100.00",
			amounts: []string{"50.00", "50.02"},
			wantErr: errors.ErrSplitMismatch,
		},
		{
			name:    "under by a lot",
			total:   "100.00",
			amounts: []string{"10.00"},
			wantErr: errors.ErrSplitMismatch,
		},
		{
			name:    "no payers",
			total:   "100.00",
			amounts: nil,
			wantErr: errors.ErrEmptySplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := make([]Share, len(tt.amounts))
			for i, a := range tt.amounts {
				ss[i] = Share{PayerName: "p", Amount: decimal.RequireFromString(a)}
			}
			err := Validate(decimal.RequireFromString(tt.total), ss)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaidByLabel(t *testing.T) {
	single := []Share{{PayerName: "Amina"}}
	assert.Equal(t, "Amina", PaidByLabel(single))

	multiple := []Share{{PayerName: "Amina"}, {PayerName: "Karim"}}
	assert.Equal(t, "Multiple", PaidByLabel(multiple))
}
