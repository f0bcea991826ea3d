package ledgermock

import (
	"context"
	"errors"
	"testing"

	"microfinance-ledger/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

func TestJournal_Transfer(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")

	called := false
	m := &Journal{
		TransferFn: func(gotCtx context.Context, amount decimal.Decimal, from, to string) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Transfer ctx mismatch")
			}
			if !amount.Equal(decimal.NewFromInt(500)) || from != "ST1A" || to != "ST1B" {
				t.Fatalf("Transfer args mismatch: %s %s %s", amount, from, to)
			}
			return wantErr
		},
	}
	if err := m.Transfer(ctx, decimal.NewFromInt(500), "ST1A", "ST1B"); !errors.Is(err, wantErr) {
		t.Fatalf("Transfer: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("TransferFn not called")
	}

	// Default (nil func) → accepted
	if err := (&Journal{}).Transfer(ctx, decimal.NewFromInt(1), "ST1A", "ST1B"); err != nil {
		t.Fatalf("Transfer default: want nil, got %v", err)
	}
}

func TestJournal_List(t *testing.T) {
	ctx := context.Background()
	want := []ledger.Transfer{{TransferID: "t1"}}

	m := &Journal{ListFn: func(context.Context) ([]ledger.Transfer, error) { return want, nil }}
	got, err := m.List(ctx)
	if err != nil || len(got) != 1 || got[0].TransferID != "t1" {
		t.Fatalf("List: got %v, %v", got, err)
	}

	got, err = (&Journal{}).List(ctx)
	if err != nil || got != nil {
		t.Fatalf("List default: want nil,nil got %v,%v", got, err)
	}
}
