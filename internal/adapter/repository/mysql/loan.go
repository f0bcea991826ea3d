package mysql

import (
	"context"
	"errors"

	"microfinance-ledger/internal/domain/errs"
	loanDomain "microfinance-ledger/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) Exists(ctx context.Context, loanID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Where("loan_id = ?", loanID).Count(&n).Error
	return n > 0, err
}
