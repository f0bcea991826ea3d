package params

import (
	"database/sql/driver"
	"fmt"
	"time"

	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/numeric"

	"github.com/shopspring/decimal"
)

// NullPrincipal is the reserved zero address. It can never be bound as the
// authority contract.
const NullPrincipal = "SP000000000000000000002Q6VF78"

// SingletonID is the primary key of the only parameters row.
const SingletonID uint8 = 1

// AuthorityBinding is either unbound (zero value) or bound to one principal.
// The only way to obtain a bound value is Bind, which refuses to rebind.
type AuthorityBinding struct {
	principal string
}

// Principal reports the bound principal, if any.
func (b AuthorityBinding) Principal() (string, bool) {
	return b.principal, b.principal != ""
}

func (b AuthorityBinding) IsBound() bool { return b.principal != "" }

// Bind returns a binding to p. It fails if b is already bound (even to p) or
// if p is the null or empty principal.
func (b AuthorityBinding) Bind(p string) (AuthorityBinding, error) {
	if p == "" || p == NullPrincipal {
		return b, errs.ErrInvalidAuthority
	}
	if b.IsBound() {
		return b, errs.ErrAuthorityAlreadyBound
	}
	return AuthorityBinding{principal: p}, nil
}

// Value stores an unbound binding as NULL.
func (b AuthorityBinding) Value() (driver.Value, error) {
	if !b.IsBound() {
		return nil, nil
	}
	return b.principal, nil
}

func (b *AuthorityBinding) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		b.principal = ""
	case string:
		b.principal = v
	case []byte:
		b.principal = string(v)
	default:
		return fmt.Errorf("params: cannot scan %T into AuthorityBinding", src)
	}
	return nil
}

// Table: parameters (single row, id = 1)
type ParameterSet struct {
	ID                   uint8            `gorm:"column:id;primaryKey;autoIncrement:false"`
	IssuanceFee          decimal.Decimal  `gorm:"column:issuance_fee;type:decimal(20,6);not null"`
	MinTrustScore        uint64           `gorm:"column:min_trust_score;not null"`
	MaxInterestRate      decimal.Decimal  `gorm:"column:max_interest_rate;type:decimal(10,4);not null"`
	MinRepaymentDuration uint64           `gorm:"column:min_repayment_duration;not null"`
	MaxRepaymentDuration uint64           `gorm:"column:max_repayment_duration;not null"`
	Authority            AuthorityBinding `gorm:"column:authority_contract;type:varchar(128)"`
	NextLoanID           uint64           `gorm:"column:next_loan_id;not null"`
	MaxLoans             uint64           `gorm:"column:max_loans;not null"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (ParameterSet) TableName() string { return "parameters" }

// Defaults returns the initial risk configuration.
func Defaults() ParameterSet {
	return ParameterSet{
		ID:                   SingletonID,
		IssuanceFee:          decimal.NewFromInt(500),
		MinTrustScore:        50,
		MaxInterestRate:      decimal.NewFromInt(15),
		MinRepaymentDuration: 30,
		MaxRepaymentDuration: 365,
		MaxLoans:             10_000,
	}
}

// BindAuthority binds the authority contract exactly once.
func (p *ParameterSet) BindAuthority(principal string) error {
	b, err := p.Authority.Bind(principal)
	if err != nil {
		return err
	}
	p.Authority = b
	return nil
}

func (p *ParameterSet) SetIssuanceFee(fee decimal.Decimal) error {
	if !p.Authority.IsBound() {
		return errs.ErrAuthorityNotVerified
	}
	if !numeric.Money.Fits(fee) {
		return errs.ErrInvalidPrecision
	}
	if fee.IsNegative() {
		return errs.ErrInvalidIssuanceFee
	}
	p.IssuanceFee = fee
	return nil
}

// SetMinTrustScore accepts any score; uint64 already rules out negatives.
func (p *ParameterSet) SetMinTrustScore(score uint64) error {
	if !p.Authority.IsBound() {
		return errs.ErrAuthorityNotVerified
	}
	p.MinTrustScore = score
	return nil
}

func (p *ParameterSet) SetMaxInterestRate(rate decimal.Decimal) error {
	if !p.Authority.IsBound() {
		return errs.ErrAuthorityNotVerified
	}
	if !numeric.Rate.Fits(rate) {
		return errs.ErrInvalidPrecision
	}
	if !rate.IsPositive() {
		return errs.ErrInvalidMaxInterest
	}
	p.MaxInterestRate = rate
	return nil
}

func (p *ParameterSet) SetRepaymentDurationRange(min, max uint64) error {
	if !p.Authority.IsBound() {
		return errs.ErrAuthorityNotVerified
	}
	if min == 0 {
		return errs.ErrInvalidMinDuration
	}
	if max < min {
		return errs.ErrInvalidMaxDuration
	}
	p.MinRepaymentDuration = min
	p.MaxRepaymentDuration = max
	return nil
}

// IDSpaceExhausted reports whether no further loan id can be allocated.
func (p *ParameterSet) IDSpaceExhausted() bool { return p.NextLoanID >= p.MaxLoans }

// AllocateLoanID returns the next id and advances the counter.
func (p *ParameterSet) AllocateLoanID() uint64 {
	id := p.NextLoanID
	p.NextLoanID++
	return id
}
