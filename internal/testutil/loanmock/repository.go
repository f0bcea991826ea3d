package loanmock

import (
	"context"

	domain "microfinance-ledger/internal/domain/loan"
)

var (
	_ domain.Repository       = (*Repo)(nil)
	_ domain.UpdateRepository = (*UpdateRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Loan, error)
	ExistsFn      func(ctx context.Context, loanID uint64) (bool, error)
	SaveFn        func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) Exists(ctx context.Context, loanID uint64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, loanID)
	}
	return false, nil
}
func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// UpdateRepo is a function-backed mock that satisfies domain.UpdateRepository.
type UpdateRepo struct {
	UpsertFn      func(ctx context.Context, u *domain.Update) error
	GetByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Update, error)
}

func (m *UpdateRepo) Upsert(ctx context.Context, u *domain.Update) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, u)
	}
	return nil
}
func (m *UpdateRepo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Update, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
