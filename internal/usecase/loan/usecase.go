package loan

import (
	"context"
	"errors"
	"fmt"

	"microfinance-ledger/internal/domain/authority"
	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/ledger"
	domain "microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/numeric"
	"microfinance-ledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Usecase is the loan lifecycle engine. Mutations go through the unit of
// work; reads use the committed-state repos.
type Usecase struct {
	uow    uow.UnitOfWork
	reads  uow.Repos
	oracle authority.Oracle
	log    logrus.FieldLogger
}

func NewUsecase(tx uow.UnitOfWork, reads uow.Repos, oracle authority.Oracle, log logrus.FieldLogger) *Usecase {
	return &Usecase{uow: tx, reads: reads, oracle: oracle, log: log}
}

// Request admits a new loan for env.Principal and returns its id. Checks run
// in a fixed order and the first failure is reported.
func (u *Usecase) Request(ctx context.Context, env caller.Env, in RequestLoanInput) (uint64, error) {
	var loanID uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ps, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		err = domain.FirstFailure(
			func() error {
				if ps.IDSpaceExhausted() {
					return errs.ErrMaxLoansExceeded
				}
				return nil
			},
			domain.CheckAmount(in.Amount),
			domain.CheckInterestRate(in.InterestRate, ps),
			domain.CheckDuration(in.RepaymentDuration, ps),
			domain.CheckTrustScore(in.TrustScore, ps),
			domain.CheckCollateral(in.CollateralAmount, in.Amount),
			domain.CheckGracePeriod(in.GracePeriod),
			domain.CheckPenaltyRate(in.PenaltyRate),
			domain.CheckCurrency(in.Currency),
			u.checkVerifiedAuthority(ctx, env.Principal),
			func() error {
				if !ps.Authority.IsBound() {
					return errs.ErrAuthorityNotVerified
				}
				return nil
			},
			func() error {
				exists, err := r.Loans.Exists(ctx, ps.NextLoanID)
				if err != nil {
					return err
				}
				if exists {
					return errs.ErrLoanAlreadyExists
				}
				return nil
			},
		)
		if err != nil {
			return err
		}

		authorityContract, _ := ps.Authority.Principal()
		if err := r.Transfers.Transfer(ctx, ps.IssuanceFee, env.Principal, authorityContract); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrTransferFailed, err)
		}

		l := &domain.Loan{
			LoanID:               ps.AllocateLoanID(),
			Borrower:             env.Principal,
			Amount:               in.Amount,
			InterestRate:         in.InterestRate,
			RepaymentDuration:    in.RepaymentDuration,
			StartTimestamp:       env.Now,
			GracePeriod:          in.GracePeriod,
			PenaltyRate:          in.PenaltyRate,
			Currency:             in.Currency,
			Status:               domain.StatusActive,
			CollateralAmount:     in.CollateralAmount,
			RepaidAmount:         decimal.Zero,
			TrustScoreAtIssuance: in.TrustScore,
			PoolID:               in.PoolID,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Params.Save(ctx, ps); err != nil {
			return err
		}
		loanID = l.LoanID
		return nil
	})
	if err != nil {
		u.reject("request", env, err, logrus.Fields{"amount": numeric.Format(in.Amount)})
		return 0, err
	}
	u.log.WithFields(logrus.Fields{
		"loan_id": loanID,
		"caller":  env.Principal,
		"amount":  numeric.Format(in.Amount),
	}).Info("loan issued")
	return loanID, nil
}

// Repay applies a payment to an active loan owned by the caller.
func (u *Usecase) Repay(ctx context.Context, env caller.Env, loanID uint64, payment decimal.Decimal) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := u.ownedActiveLoan(ctx, r, env, loanID)
		if err != nil {
			return err
		}
		if env.Now < l.DueFrom() {
			return errs.ErrLoanNotDue
		}
		if err := domain.CheckPrecision(payment, numeric.Money)(); err != nil {
			return err
		}
		if payment.IsNegative() {
			return errs.ErrInvalidPaymentAmount
		}
		totalDue := l.TotalDue()
		repaid := l.RepaidAmount.Add(payment)
		if repaid.GreaterThan(totalDue) {
			return errs.ErrPaymentExceedsDebt
		}

		l.RepaidAmount = repaid
		if repaid.GreaterThanOrEqual(totalDue) {
			l.Status = domain.StatusRepaid
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		u.reject("repay", env, err, logrus.Fields{"loan_id": loanID, "payment": numeric.Format(payment)})
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"loan_id": loanID,
		"caller":  env.Principal,
		"payment": numeric.Format(payment),
		"status":  dto.Status,
	}).Info("loan repayment accepted")
	return dto, nil
}

// Update replaces the loan terms, validated against the current parameters,
// and restarts the grace-period clock.
func (u *Usecase) Update(ctx context.Context, env caller.Env, loanID uint64, in UpdateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := u.ownedActiveLoan(ctx, r, env, loanID)
		if err != nil {
			return err
		}
		ps, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		err = domain.FirstFailure(
			domain.CheckAmount(in.Amount),
			domain.CheckInterestRate(in.InterestRate, ps),
			domain.CheckDuration(in.RepaymentDuration, ps),
			func() error {
				// repaid must stay strictly below the new total, or the
				// loan would be settled without a repayment.
				if !l.RepaidAmount.LessThan(domain.TotalDue(in.Amount, in.InterestRate)) {
					return errs.ErrInvalidUpdateParam
				}
				return nil
			},
		)
		if err != nil {
			return err
		}

		l.Amount = in.Amount
		l.InterestRate = in.InterestRate
		l.RepaymentDuration = in.RepaymentDuration
		l.StartTimestamp = env.Now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Updates.Upsert(ctx, &domain.Update{
			LoanID:            l.LoanID,
			Amount:            in.Amount,
			InterestRate:      in.InterestRate,
			RepaymentDuration: in.RepaymentDuration,
			Timestamp:         env.Now,
			Updater:           env.Principal,
		}); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		u.reject("update", env, err, logrus.Fields{"loan_id": loanID})
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"loan_id": loanID, "caller": env.Principal}).Info("loan terms updated")
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.reads.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) GetUpdate(ctx context.Context, loanID uint64) (*UpdateDTO, error) {
	up, err := u.reads.Updates.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toUpdateDTO(up), nil
}

// Count is the issuance counter: every loan ever issued, whatever its status.
func (u *Usecase) Count(ctx context.Context) (uint64, error) {
	ps, err := u.reads.Params.Get(ctx)
	if err != nil {
		return 0, err
	}
	return ps.NextLoanID, nil
}

// Transfers lists the journaled fee transfers, oldest first.
func (u *Usecase) Transfers(ctx context.Context) ([]ledger.Transfer, error) {
	return u.reads.Transfers.List(ctx)
}

func (u *Usecase) ownedActiveLoan(ctx context.Context, r uow.Repos, env caller.Env, loanID uint64) (*domain.Loan, error) {
	l, err := r.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.Borrower != env.Principal {
		return nil, errs.ErrInvalidBorrower
	}
	if l.Status != domain.StatusActive {
		return nil, errs.ErrInvalidStatus
	}
	return l, nil
}

func (u *Usecase) checkVerifiedAuthority(ctx context.Context, principal string) domain.Check {
	return func() error {
		ok, err := u.oracle.IsVerifiedAuthority(ctx, principal)
		if err != nil {
			return fmt.Errorf("authority oracle: %w", err)
		}
		if !ok {
			return errs.ErrNotAuthorized
		}
		return nil
	}
}

func (u *Usecase) reject(op string, env caller.Env, err error, fields logrus.Fields) {
	entry := u.log.WithFields(fields).WithField("op", op).WithField("caller", env.Principal)
	if kind, ok := errs.KindOf(err); ok && !errors.Is(err, errs.ErrTransferFailed) {
		entry.WithField("kind", uint16(kind)).Info("loan operation rejected")
		return
	}
	entry.WithError(err).Error("loan operation failed")
}
