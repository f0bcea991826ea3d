package ledgermock

import (
	"context"

	"microfinance-ledger/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

var _ ledger.Journal = (*Journal)(nil)

// Journal is a function-backed mock that satisfies ledger.Journal.
// Unset funcs accept every transfer and list nothing.
type Journal struct {
	TransferFn func(ctx context.Context, amount decimal.Decimal, from, to string) error
	ListFn     func(ctx context.Context) ([]ledger.Transfer, error)
}

func (m *Journal) Transfer(ctx context.Context, amount decimal.Decimal, from, to string) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, amount, from, to)
	}
	return nil
}

func (m *Journal) List(ctx context.Context) ([]ledger.Transfer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
