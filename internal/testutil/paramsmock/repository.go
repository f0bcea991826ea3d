package paramsmock

import (
	"context"

	"microfinance-ledger/internal/domain/params"
)

var _ params.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies params.Repository.
// Get defaults to a copy of params.Defaults().
type Repo struct {
	GetFn  func(ctx context.Context) (*params.ParameterSet, error)
	SaveFn func(ctx context.Context, p *params.ParameterSet) error
}

func (m *Repo) Get(ctx context.Context) (*params.ParameterSet, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	p := params.Defaults()
	return &p, nil
}

func (m *Repo) Save(ctx context.Context, p *params.ParameterSet) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
