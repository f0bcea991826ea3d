package memory

import (
	"context"
	"fmt"
	"time"

	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/ledger"
	"microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/params"
	"microfinance-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

type loanRepo struct{ view view }

func (r *loanRepo) Create(_ context.Context, l *loan.Loan) error {
	st, release := r.view()
	defer release()
	if _, ok := st.loans[l.LoanID]; ok {
		return fmt.Errorf("memory: duplicate loan_id %d", l.LoanID)
	}
	st.nextRowID++
	now := time.Now().UTC()
	l.ID = st.nextRowID
	l.CreatedAt, l.UpdatedAt = now, now
	st.loans[l.LoanID] = *l
	return nil
}

func (r *loanRepo) GetByLoanID(_ context.Context, loanID uint64) (*loan.Loan, error) {
	st, release := r.view()
	defer release()
	l, ok := st.loans[loanID]
	if !ok {
		return nil, errs.ErrLoanNotFound
	}
	return &l, nil
}

func (r *loanRepo) Exists(_ context.Context, loanID uint64) (bool, error) {
	st, release := r.view()
	defer release()
	_, ok := st.loans[loanID]
	return ok, nil
}

func (r *loanRepo) Save(_ context.Context, l *loan.Loan) error {
	st, release := r.view()
	defer release()
	if _, ok := st.loans[l.LoanID]; !ok {
		return errs.ErrLoanNotFound
	}
	l.UpdatedAt = time.Now().UTC()
	st.loans[l.LoanID] = *l
	return nil
}

type updateRepo struct{ view view }

func (r *updateRepo) Upsert(_ context.Context, u *loan.Update) error {
	st, release := r.view()
	defer release()
	if prev, ok := st.updates[u.LoanID]; ok {
		u.ID = prev.ID
	} else {
		st.nextRowID++
		u.ID = st.nextRowID
	}
	u.UpdatedAt = time.Now().UTC()
	st.updates[u.LoanID] = *u
	return nil
}

func (r *updateRepo) GetByLoanID(_ context.Context, loanID uint64) (*loan.Update, error) {
	st, release := r.view()
	defer release()
	u, ok := st.updates[loanID]
	if !ok {
		return nil, errs.ErrLoanUpdateNotFound
	}
	return &u, nil
}

type paramsRepo struct{ view view }

func (r *paramsRepo) Get(_ context.Context) (*params.ParameterSet, error) {
	st, release := r.view()
	defer release()
	p := st.params
	return &p, nil
}

func (r *paramsRepo) Save(_ context.Context, p *params.ParameterSet) error {
	st, release := r.view()
	defer release()
	p.ID = params.SingletonID
	p.UpdatedAt = time.Now().UTC()
	st.params = *p
	return nil
}

type journal struct {
	view        view
	deferSettle bool
}

func (j *journal) Transfer(_ context.Context, amount decimal.Decimal, from, to string) error {
	if err := ledger.Check(amount, from, to); err != nil {
		return err
	}
	st, release := j.view()
	defer release()
	st.nextRowID++
	t := ledger.Transfer{
		ID:         st.nextRowID,
		TransferID: id.NewID32(),
		Amount:     amount,
		From:       from,
		To:         to,
		CreatedAt:  time.Now().UTC(),
	}
	st.transfers = append(st.transfers, t)
	if j.deferSettle {
		st.pending = append(st.pending, t)
	}
	return nil
}

func (j *journal) List(_ context.Context) ([]ledger.Transfer, error) {
	st, release := j.view()
	defer release()
	out := make([]ledger.Transfer, len(st.transfers))
	copy(out, st.transfers)
	return out, nil
}
