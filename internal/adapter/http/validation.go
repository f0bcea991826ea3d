package http

import (
	"encoding/json"
	"errors"

	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/numeric"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    uint16       `json:"code,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// principal = opaque address, optionally "address.contract"
	_ = v.RegisterValidation("principal", func(fl validator.FieldLevel) bool {
		return caller.ValidPrincipal(fl.Field().String())
	})
	// decimal = base-10 number as accepted by shopspring/decimal, with an
	// exponent and coefficient small enough to compare in constant time
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && numeric.Sane(d)
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "principal":
			out = append(out, FieldError{Field: field, Message: "must be a principal (1-128 of [A-Za-z0-9._-])"})
		case "decimal":
			out = append(out, FieldError{Field: field, Message: "must be a decimal number within ledger range"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// mustDecimal converts a value the "decimal" tag already accepted.
func mustDecimal(n json.Number) decimal.Decimal {
	return decimal.RequireFromString(string(n))
}
