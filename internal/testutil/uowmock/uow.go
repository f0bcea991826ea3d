package uowmock

import (
	"context"
	"errors"

	"microfinance-ledger/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs fn directly against r, without isolation.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(r) }}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
