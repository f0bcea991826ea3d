package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// GetByLoanID returns errs.ErrLoanNotFound when absent.
	GetByLoanID(ctx context.Context, loanID uint64) (*Loan, error)
	Exists(ctx context.Context, loanID uint64) (bool, error)
	Save(ctx context.Context, l *Loan) error
}

type UpdateRepository interface {
	// Upsert replaces the loan's update record, if any.
	Upsert(ctx context.Context, u *Update) error
	// GetByLoanID returns errs.ErrLoanUpdateNotFound when absent.
	GetByLoanID(ctx context.Context, loanID uint64) (*Update, error)
}
