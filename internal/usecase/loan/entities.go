package loan

import (
	domain "microfinance-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type RequestLoanInput struct {
	Amount            decimal.Decimal `json:"amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	RepaymentDuration uint64          `json:"repayment_duration"`
	GracePeriod       uint64          `json:"grace_period"`
	PenaltyRate       decimal.Decimal `json:"penalty_rate"`
	Currency          domain.Currency `json:"currency"`
	CollateralAmount  decimal.Decimal `json:"collateral_amount"`
	// TrustScore is computed upstream; only compared against the threshold here.
	TrustScore uint64 `json:"trust_score"`
	PoolID     uint64 `json:"pool_id"`
}

type UpdateLoanInput struct {
	Amount            decimal.Decimal `json:"amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	RepaymentDuration uint64          `json:"repayment_duration"`
}

type LoanDTO struct {
	LoanID               uint64          `json:"loan_id"`
	Borrower             string          `json:"borrower"`
	Amount               decimal.Decimal `json:"amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	RepaymentDuration    uint64          `json:"repayment_duration"`
	StartTimestamp       uint64          `json:"start_timestamp"`
	GracePeriod          uint64          `json:"grace_period"`
	PenaltyRate          decimal.Decimal `json:"penalty_rate"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
	CollateralAmount     decimal.Decimal `json:"collateral_amount"`
	RepaidAmount         decimal.Decimal `json:"repaid_amount"`
	TotalDue             decimal.Decimal `json:"total_due"`
	Outstanding          decimal.Decimal `json:"outstanding"`
	TrustScoreAtIssuance uint64          `json:"trust_score_at_issuance"`
	PoolID               uint64          `json:"pool_id"`
}

type UpdateDTO struct {
	LoanID            uint64          `json:"loan_id"`
	Amount            decimal.Decimal `json:"update_amount"`
	InterestRate      decimal.Decimal `json:"update_interest_rate"`
	RepaymentDuration uint64          `json:"update_repayment_duration"`
	Timestamp         uint64          `json:"update_timestamp"`
	Updater           string          `json:"updater"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:               l.LoanID,
		Borrower:             l.Borrower,
		Amount:               l.Amount,
		InterestRate:         l.InterestRate,
		RepaymentDuration:    l.RepaymentDuration,
		StartTimestamp:       l.StartTimestamp,
		GracePeriod:          l.GracePeriod,
		PenaltyRate:          l.PenaltyRate,
		Currency:             string(l.Currency),
		Status:               string(l.Status),
		CollateralAmount:     l.CollateralAmount,
		RepaidAmount:         l.RepaidAmount,
		TotalDue:             l.TotalDue(),
		Outstanding:          l.Outstanding(),
		TrustScoreAtIssuance: l.TrustScoreAtIssuance,
		PoolID:               l.PoolID,
	}
}

func toUpdateDTO(u *domain.Update) *UpdateDTO {
	return &UpdateDTO{
		LoanID:            u.LoanID,
		Amount:            u.Amount,
		InterestRate:      u.InterestRate,
		RepaymentDuration: u.RepaymentDuration,
		Timestamp:         u.Timestamp,
		Updater:           u.Updater,
	}
}
