// Package memory is a process-local ledger store. Each unit of work runs on
// a private copy of the state that replaces the committed state only when
// the unit of work succeeds.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/ledger"
	"microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/params"
	"microfinance-ledger/internal/domain/uow"
)

type state struct {
	loans     map[uint64]loan.Loan
	updates   map[uint64]loan.Update
	params    params.ParameterSet
	transfers []ledger.Transfer
	nextRowID uint64

	// pending holds transfers journaled by the running unit of work that
	// still await settlement. Never carried over by clone.
	pending []ledger.Transfer
}

func (s *state) clone() *state {
	return &state{
		loans:     maps.Clone(s.loans),
		updates:   maps.Clone(s.updates),
		params:    s.params,
		transfers: slices.Clone(s.transfers),
		nextRowID: s.nextRowID,
	}
}

type Option func(*Store)

// WithSettlement forwards the transfers journaled by a unit of work to t once
// the work itself has succeeded, right before it commits. A settlement error
// fails the unit of work; settlements already made are not reversed.
func WithSettlement(t ledger.Transferer) Option {
	return func(s *Store) { s.settle = t }
}

type Store struct {
	mu        sync.RWMutex
	committed *state
	settle    ledger.Transferer
}

func New(initial params.ParameterSet, opts ...Option) *Store {
	initial.ID = params.SingletonID
	s := &Store{committed: &state{
		loans:   map[uint64]loan.Loan{},
		updates: map[uint64]loan.Update{},
		params:  initial,
	}}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.committed.clone()
	v := func() (*state, func()) { return work, func() {} }
	if err := fn(s.repos(v)); err != nil {
		return err
	}
	if err := s.settlePending(ctx, work.pending); err != nil {
		return err
	}
	work.pending = nil
	s.committed = work
	return nil
}

func (s *Store) settlePending(ctx context.Context, pending []ledger.Transfer) error {
	for _, t := range pending {
		if err := s.settle.Transfer(ctx, t.Amount, t.From, t.To); err != nil {
			return fmt.Errorf("%w: settle %s: %w", errs.ErrTransferFailed, t.TransferID, err)
		}
	}
	return nil
}

// Repos returns repositories over committed state, for reads.
func (s *Store) Repos() uow.Repos {
	return s.repos(func() (*state, func()) {
		s.mu.RLock()
		return s.committed, s.mu.RUnlock
	})
}

// view hands out the state to operate on and the func releasing it.
type view func() (*state, func())

func (s *Store) repos(v view) uow.Repos {
	return uow.Repos{
		Loans:     &loanRepo{view: v},
		Updates:   &updateRepo{view: v},
		Params:    &paramsRepo{view: v},
		Transfers: &journal{view: v, deferSettle: s.settle != nil},
	}
}
