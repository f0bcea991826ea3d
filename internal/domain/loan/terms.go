package loan

import (
	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/numeric"
	"microfinance-ledger/internal/domain/params"

	"github.com/shopspring/decimal"
)

var (
	MaxAmount      = decimal.NewFromInt(1_000_000)
	MaxPenaltyRate = decimal.NewFromInt(10)
	// CollateralRatio is the minimum collateral-to-amount ratio when
	// collateral is posted at all.
	CollateralRatio = decimal.RequireFromString("1.5")

	hundred = decimal.NewFromInt(100)
)

const MaxGracePeriod uint64 = 30

// TotalDue computes amount + amount*rate/100, the interest truncated to the
// money scale so the debt is always exactly payable.
func TotalDue(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(rate).Div(hundred).Truncate(numeric.Money.Scale))
}

// CheckPrecision must pass before any arithmetic on v.
func CheckPrecision(v decimal.Decimal, col numeric.Column) Check {
	return func() error {
		if !col.Fits(v) {
			return errs.ErrInvalidPrecision
		}
		return nil
	}
}

// Check is one ordered admission predicate.
type Check func() error

// FirstFailure runs checks in order and returns the first error.
func FirstFailure(checks ...Check) error {
	for _, c := range checks {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func CheckAmount(amount decimal.Decimal) Check {
	return func() error {
		if !numeric.Money.Fits(amount) {
			return errs.ErrInvalidPrecision
		}
		if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
			return errs.ErrInvalidLoanAmount
		}
		return nil
	}
}

func CheckInterestRate(rate decimal.Decimal, ps *params.ParameterSet) Check {
	return func() error {
		if !numeric.Rate.Fits(rate) {
			return errs.ErrInvalidPrecision
		}
		if !rate.IsPositive() || rate.GreaterThan(ps.MaxInterestRate) {
			return errs.ErrInvalidInterestRate
		}
		return nil
	}
}

func CheckDuration(d uint64, ps *params.ParameterSet) Check {
	return func() error {
		if d < ps.MinRepaymentDuration || d > ps.MaxRepaymentDuration {
			return errs.ErrInvalidRepaymentDuration
		}
		return nil
	}
}

func CheckTrustScore(score uint64, ps *params.ParameterSet) Check {
	return func() error {
		if score < ps.MinTrustScore {
			return errs.ErrInsufficientTrustScore
		}
		return nil
	}
}

// CheckCollateral accepts zero (uncollateralized) or at least 1.5x amount.
func CheckCollateral(collateral, amount decimal.Decimal) Check {
	return func() error {
		if !numeric.Money.Fits(collateral) {
			return errs.ErrInvalidPrecision
		}
		if collateral.IsZero() {
			return nil
		}
		if collateral.IsNegative() || collateral.LessThan(amount.Mul(CollateralRatio)) {
			return errs.ErrInvalidCollateral
		}
		return nil
	}
}

func CheckGracePeriod(g uint64) Check {
	return func() error {
		if g > MaxGracePeriod {
			return errs.ErrInvalidGracePeriod
		}
		return nil
	}
}

func CheckPenaltyRate(p decimal.Decimal) Check {
	return func() error {
		if !numeric.Rate.Fits(p) {
			return errs.ErrInvalidPrecision
		}
		if p.IsNegative() || p.GreaterThan(MaxPenaltyRate) {
			return errs.ErrInvalidPenaltyRate
		}
		return nil
	}
}

func CheckCurrency(c Currency) Check {
	return func() error {
		if !c.Valid() {
			return errs.ErrInvalidCurrency
		}
		return nil
	}
}
