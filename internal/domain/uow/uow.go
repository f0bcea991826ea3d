package uow

import (
	"context"

	"microfinance-ledger/internal/domain/ledger"
	"microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/params"
)

// Repos are bound to one transaction.
type Repos struct {
	Loans     loan.Repository
	Updates   loan.UpdateRepository
	Params    params.Repository
	Transfers ledger.Journal
}

// UnitOfWork is the single serialization point for every mutation: calls to
// WithinTx never overlap, and fn's effects are committed only if it returns nil.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
