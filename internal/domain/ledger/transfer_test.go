package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		from, to string
		want     error
	}{
		{"ok", 500, "ST1B", "ST1A", nil},
		{"zero amount", 0, "ST1B", "ST1A", nil},
		{"negative", -1, "ST1B", "ST1A", ErrNegativeAmount},
		{"self", 1, "ST1A", "ST1A", ErrSelfTransfer},
		{"missing sender", 1, "", "ST1A", ErrMissingEndpoint},
		{"missing recipient", 1, "ST1B", "", ErrMissingEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Check(decimal.NewFromInt(tt.amount), tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheck_AmountBeyondLedgerScale(t *testing.T) {
	for _, s := range []string{"0.0000001", "1e-50000000", "1234567890.5"} {
		if err := Check(decimal.RequireFromString(s), "ST1B", "ST1A"); !errors.Is(err, ErrAmountPrecision) {
			t.Fatalf("Check(%s) = %v, want %v", s, err, ErrAmountPrecision)
		}
	}
}
