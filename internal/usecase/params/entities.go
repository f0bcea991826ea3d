package params

import (
	domain "microfinance-ledger/internal/domain/params"

	"github.com/shopspring/decimal"
)

type ParamsDTO struct {
	IssuanceFee          decimal.Decimal `json:"issuance_fee"`
	MinTrustScore        uint64          `json:"min_trust_score"`
	MaxInterestRate      decimal.Decimal `json:"max_interest_rate"`
	MinRepaymentDuration uint64          `json:"min_repayment_duration"`
	MaxRepaymentDuration uint64          `json:"max_repayment_duration"`
	// AuthorityContract is empty while unbound.
	AuthorityContract string `json:"authority_contract,omitempty"`
	LoanCount         uint64 `json:"loan_count"`
	MaxLoans          uint64 `json:"max_loans"`
}

func toDTO(p *domain.ParameterSet) *ParamsDTO {
	authority, _ := p.Authority.Principal()
	return &ParamsDTO{
		IssuanceFee:          p.IssuanceFee,
		MinTrustScore:        p.MinTrustScore,
		MaxInterestRate:      p.MaxInterestRate,
		MinRepaymentDuration: p.MinRepaymentDuration,
		MaxRepaymentDuration: p.MaxRepaymentDuration,
		AuthorityContract:    authority,
		LoanCount:            p.NextLoanID,
		MaxLoans:             p.MaxLoans,
	}
}
