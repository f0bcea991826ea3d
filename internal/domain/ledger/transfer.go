package ledger

import (
	"context"
	"errors"
	"time"

	"microfinance-ledger/internal/domain/numeric"

	"github.com/shopspring/decimal"
)

var (
	ErrSelfTransfer    = errors.New("sender and recipient are the same principal")
	ErrNegativeAmount  = errors.New("transfer amount must not be negative")
	ErrMissingEndpoint = errors.New("transfer requires sender and recipient")
	ErrAmountPrecision = errors.New("transfer amount exceeds ledger precision")
)

// Table: transfers
type Transfer struct {
	ID         uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransferID string          `gorm:"column:transfer_id;type:char(32);not null;uniqueIndex" json:"transfer_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(20,6);not null" json:"amount"`
	From       string          `gorm:"column:from_principal;size:128;not null;index" json:"from"`
	To         string          `gorm:"column:to_principal;size:128;not null" json:"to"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transfer) TableName() string { return "transfers" }

// Transferer moves value between principals. Implementations bound to a unit
// of work must roll the transfer back together with the rest of the tx.
type Transferer interface {
	Transfer(ctx context.Context, amount decimal.Decimal, from, to string) error
}

// Journal is a Transferer whose movements can be listed back.
type Journal interface {
	Transferer
	List(ctx context.Context) ([]Transfer, error)
}

// Check applies the rules every transfer primitive shares.
func Check(amount decimal.Decimal, from, to string) error {
	switch {
	case from == "" || to == "":
		return ErrMissingEndpoint
	case !numeric.Money.Fits(amount):
		return ErrAmountPrecision
	case amount.IsNegative():
		return ErrNegativeAmount
	case from == to:
		return ErrSelfTransfer
	}
	return nil
}
