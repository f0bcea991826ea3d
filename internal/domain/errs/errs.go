package errs

import "errors"

// Kind is the closed set of domain failures. Values are stable numeric codes
// shared with API clients.
type Kind uint16

const (
	KindNotAuthorized            Kind = 100
	KindInvalidLoanAmount        Kind = 101
	KindInvalidInterestRate      Kind = 102
	KindInvalidRepaymentDuration Kind = 103
	KindInsufficientTrustScore   Kind = 104
	KindLoanAlreadyExists        Kind = 105
	KindLoanNotFound             Kind = 106
	KindInvalidCollateral        Kind = 109
	KindLoanNotDue               Kind = 110
	KindPaymentExceedsDebt       Kind = 111
	KindInvalidStatus            Kind = 112
	KindInvalidBorrower          Kind = 113
	KindMaxLoansExceeded         Kind = 115
	KindInvalidGracePeriod       Kind = 116
	KindInvalidPenaltyRate       Kind = 117
	KindInvalidCurrency          Kind = 118
	KindInvalidUpdateParam       Kind = 119
	KindAuthorityNotVerified     Kind = 120
	KindInvalidMinScore          Kind = 121
	KindInvalidMaxInterest       Kind = 122
	KindInvalidMinDuration       Kind = 123
	KindInvalidMaxDuration       Kind = 124
	KindAuthorityAlreadyBound    Kind = 125
	KindInvalidAuthority         Kind = 126
	KindInvalidPaymentAmount     Kind = 127
	KindTransferFailed           Kind = 128
	KindLoanUpdateNotFound       Kind = 129
	KindInvalidIssuanceFee       Kind = 130
	KindInvalidPrecision         Kind = 131
)

// Category groups kinds for transport mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryAuthorization
	CategoryConfiguration
	CategoryResourceLimit
	CategoryState
	CategoryNotFound
	CategoryExternal
)

// Error is a domain failure. Sentinels below are compared with errors.Is.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(k Kind, msg string) *Error { return &Error{Kind: k, msg: msg} }

var (
	ErrNotAuthorized            = newError(KindNotAuthorized, "caller is not a verified authority")
	ErrInvalidLoanAmount        = newError(KindInvalidLoanAmount, "loan amount out of range")
	ErrInvalidInterestRate      = newError(KindInvalidInterestRate, "interest rate out of range")
	ErrInvalidRepaymentDuration = newError(KindInvalidRepaymentDuration, "repayment duration out of range")
	ErrInsufficientTrustScore   = newError(KindInsufficientTrustScore, "insufficient trust score")
	ErrLoanAlreadyExists        = newError(KindLoanAlreadyExists, "loan already exists")
	ErrLoanNotFound             = newError(KindLoanNotFound, "loan not found")
	ErrInvalidCollateral        = newError(KindInvalidCollateral, "collateral below required ratio")
	ErrLoanNotDue               = newError(KindLoanNotDue, "grace period has not elapsed")
	ErrPaymentExceedsDebt       = newError(KindPaymentExceedsDebt, "payment exceeds outstanding debt")
	ErrInvalidStatus            = newError(KindInvalidStatus, "loan is not active")
	ErrInvalidBorrower          = newError(KindInvalidBorrower, "caller is not the borrower")
	ErrMaxLoansExceeded         = newError(KindMaxLoansExceeded, "loan id space exhausted")
	ErrInvalidGracePeriod       = newError(KindInvalidGracePeriod, "grace period out of range")
	ErrInvalidPenaltyRate       = newError(KindInvalidPenaltyRate, "penalty rate out of range")
	ErrInvalidCurrency          = newError(KindInvalidCurrency, "unsupported currency")
	ErrInvalidUpdateParam       = newError(KindInvalidUpdateParam, "update would leave repaid amount above total due")
	ErrAuthorityNotVerified     = newError(KindAuthorityNotVerified, "authority contract not bound")
	ErrInvalidMinScore          = newError(KindInvalidMinScore, "invalid minimum trust score")
	ErrInvalidMaxInterest       = newError(KindInvalidMaxInterest, "invalid maximum interest rate")
	ErrInvalidMinDuration       = newError(KindInvalidMinDuration, "invalid minimum repayment duration")
	ErrInvalidMaxDuration       = newError(KindInvalidMaxDuration, "invalid maximum repayment duration")
	ErrAuthorityAlreadyBound    = newError(KindAuthorityAlreadyBound, "authority contract already bound")
	ErrInvalidAuthority         = newError(KindInvalidAuthority, "invalid authority principal")
	ErrInvalidPaymentAmount     = newError(KindInvalidPaymentAmount, "payment amount must not be negative")
	ErrTransferFailed           = newError(KindTransferFailed, "issuance fee transfer failed")
	ErrLoanUpdateNotFound       = newError(KindLoanUpdateNotFound, "loan update not found")
	ErrInvalidIssuanceFee       = newError(KindInvalidIssuanceFee, "issuance fee must not be negative")
	ErrInvalidPrecision         = newError(KindInvalidPrecision, "value has more digits than the ledger stores")
)

// KindOf extracts the domain kind from err, if any.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func (k Kind) Category() Category {
	switch k {
	case KindNotAuthorized, KindAuthorityNotVerified, KindAuthorityAlreadyBound:
		return CategoryAuthorization
	case KindInvalidLoanAmount, KindInvalidInterestRate, KindInvalidRepaymentDuration,
		KindInsufficientTrustScore, KindInvalidCollateral, KindInvalidGracePeriod,
		KindInvalidPenaltyRate, KindInvalidCurrency, KindInvalidUpdateParam,
		KindInvalidMinScore, KindInvalidMaxInterest, KindInvalidMinDuration,
		KindInvalidMaxDuration, KindInvalidAuthority, KindInvalidPaymentAmount,
		KindInvalidIssuanceFee, KindInvalidPrecision:
		return CategoryConfiguration
	case KindMaxLoansExceeded, KindLoanAlreadyExists:
		return CategoryResourceLimit
	case KindLoanNotDue, KindPaymentExceedsDebt, KindInvalidStatus, KindInvalidBorrower:
		return CategoryState
	case KindLoanNotFound, KindLoanUpdateNotFound:
		return CategoryNotFound
	case KindTransferFailed:
		return CategoryExternal
	}
	return CategoryUnknown
}
