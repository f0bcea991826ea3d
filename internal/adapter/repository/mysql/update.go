package mysql

import (
	"context"
	"errors"

	"microfinance-ledger/internal/domain/errs"
	loanDomain "microfinance-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateRepository struct{ db *gorm.DB }

func NewUpdateRepository(db *gorm.DB) *UpdateRepository { return &UpdateRepository{db: db} }

// Upsert keeps one row per loan, overwritten in place.
func (r *UpdateRepository) Upsert(ctx context.Context, u *loanDomain.Update) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "loan_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"update_amount",
			"update_interest_rate",
			"update_repayment_duration",
			"update_timestamp",
			"updater",
			"updated_at",
		}),
	}).Create(u).Error
}

func (r *UpdateRepository) GetByLoanID(ctx context.Context, loanID uint64) (*loanDomain.Update, error) {
	var out loanDomain.Update
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrLoanUpdateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
