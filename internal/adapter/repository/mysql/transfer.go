package mysql

import (
	"context"

	"microfinance-ledger/internal/domain/ledger"
	"microfinance-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransferJournal records value movements in the transfers table. Bound to
// a tx, a recorded transfer rolls back with the rest of the unit of work.
type TransferJournal struct{ db *gorm.DB }

func NewTransferJournal(db *gorm.DB) *TransferJournal { return &TransferJournal{db: db} }

func (j *TransferJournal) Transfer(ctx context.Context, amount decimal.Decimal, from, to string) error {
	if err := ledger.Check(amount, from, to); err != nil {
		return err
	}
	return j.db.WithContext(ctx).Create(&ledger.Transfer{
		TransferID: id.NewID32(),
		Amount:     amount,
		From:       from,
		To:         to,
	}).Error
}

func (j *TransferJournal) List(ctx context.Context) ([]ledger.Transfer, error) {
	var out []ledger.Transfer
	err := j.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}
