package params

import (
	"context"

	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/errs"
	domain "microfinance-ledger/internal/domain/params"
	"microfinance-ledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Usecase administers the risk parameters. Each setter touches only its own
// fields and runs in its own unit of work.
type Usecase struct {
	uow   uow.UnitOfWork
	reads domain.Repository
	log   logrus.FieldLogger
}

func NewUsecase(tx uow.UnitOfWork, reads domain.Repository, log logrus.FieldLogger) *Usecase {
	return &Usecase{uow: tx, reads: reads, log: log}
}

func (u *Usecase) Get(ctx context.Context) (*ParamsDTO, error) {
	p, err := u.reads.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// SetAuthorityContract binds the authority once; every later call fails.
func (u *Usecase) SetAuthorityContract(ctx context.Context, env caller.Env, principal string) (*ParamsDTO, error) {
	return u.mutate(ctx, env, "set_authority_contract", func(p *domain.ParameterSet) error {
		return p.BindAuthority(principal)
	})
}

func (u *Usecase) SetIssuanceFee(ctx context.Context, env caller.Env, fee decimal.Decimal) (*ParamsDTO, error) {
	return u.mutate(ctx, env, "set_issuance_fee", func(p *domain.ParameterSet) error {
		return p.SetIssuanceFee(fee)
	})
}

func (u *Usecase) SetMinTrustScore(ctx context.Context, env caller.Env, score uint64) (*ParamsDTO, error) {
	return u.mutate(ctx, env, "set_min_trust_score", func(p *domain.ParameterSet) error {
		return p.SetMinTrustScore(score)
	})
}

func (u *Usecase) SetMaxInterestRate(ctx context.Context, env caller.Env, rate decimal.Decimal) (*ParamsDTO, error) {
	return u.mutate(ctx, env, "set_max_interest_rate", func(p *domain.ParameterSet) error {
		return p.SetMaxInterestRate(rate)
	})
}

func (u *Usecase) SetRepaymentDurationRange(ctx context.Context, env caller.Env, min, max uint64) (*ParamsDTO, error) {
	return u.mutate(ctx, env, "set_repayment_duration_range", func(p *domain.ParameterSet) error {
		return p.SetRepaymentDurationRange(min, max)
	})
}

func (u *Usecase) mutate(ctx context.Context, env caller.Env, op string, apply func(*domain.ParameterSet) error) (*ParamsDTO, error) {
	var dto *ParamsDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		if err := apply(p); err != nil {
			return err
		}
		if err := r.Params.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})

	entry := u.log.WithField("op", op).WithField("caller", env.Principal)
	if err != nil {
		if kind, ok := errs.KindOf(err); ok {
			entry.WithField("kind", uint16(kind)).Info("parameter change rejected")
		} else {
			entry.WithError(err).Error("parameter change failed")
		}
		return nil, err
	}
	entry.Info("parameters updated")
	return dto, nil
}
