package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "active"
	StatusRepaid Status = "repaid"
)

type Currency string

const (
	CurrencySTX Currency = "STX"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool { return c == CurrencySTX || c == CurrencyUSD }

type Loan struct {
	ID                   uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID               uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Borrower             string          `gorm:"column:borrower;size:128;not null;index:idx_loans_borrower" json:"borrower"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(20,6);not null" json:"amount"`
	InterestRate         decimal.Decimal `gorm:"column:interest_rate;type:decimal(10,4);not null" json:"interest_rate"`
	RepaymentDuration    uint64          `gorm:"column:repayment_duration;not null" json:"repayment_duration"`
	StartTimestamp       uint64          `gorm:"column:start_timestamp;not null" json:"start_timestamp"`
	GracePeriod          uint64          `gorm:"column:grace_period;not null" json:"grace_period"`
	PenaltyRate          decimal.Decimal `gorm:"column:penalty_rate;type:decimal(10,4);not null" json:"penalty_rate"`
	Currency             Currency        `gorm:"column:currency;size:8;not null" json:"currency"`
	Status               Status          `gorm:"column:status;size:16;not null;default:'active'" json:"status"`
	CollateralAmount     decimal.Decimal `gorm:"column:collateral_amount;type:decimal(20,6);not null" json:"collateral_amount"`
	RepaidAmount         decimal.Decimal `gorm:"column:repaid_amount;type:decimal(20,6);not null" json:"repaid_amount"`
	TrustScoreAtIssuance uint64          `gorm:"column:trust_score_at_issuance;not null" json:"trust_score_at_issuance"`
	PoolID               uint64          `gorm:"column:pool_id;not null" json:"pool_id"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// TotalDue is principal plus flat interest at the loan's own rate.
func (l *Loan) TotalDue() decimal.Decimal { return TotalDue(l.Amount, l.InterestRate) }

// Outstanding is what is still owed.
func (l *Loan) Outstanding() decimal.Decimal { return l.TotalDue().Sub(l.RepaidAmount) }

// DueFrom is the first time unit at which repayments are accepted.
func (l *Loan) DueFrom() uint64 { return l.StartTimestamp + l.GracePeriod }

// Table: loan_updates (at most one row per loan, overwritten on each update)
type Update struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID            uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_loan_updates_loan_id" json:"loan_id"`
	Amount            decimal.Decimal `gorm:"column:update_amount;type:decimal(20,6);not null" json:"update_amount"`
	InterestRate      decimal.Decimal `gorm:"column:update_interest_rate;type:decimal(10,4);not null" json:"update_interest_rate"`
	RepaymentDuration uint64          `gorm:"column:update_repayment_duration;not null" json:"update_repayment_duration"`
	Timestamp         uint64          `gorm:"column:update_timestamp;not null" json:"update_timestamp"`
	Updater           string          `gorm:"column:updater;size:128;not null" json:"updater"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Update) TableName() string { return "loan_updates" }
