package http

import (
	"net/http"

	"microfinance-ledger/internal/domain/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a domain failure to its HTTP status. Errors without a
// domain kind are infrastructure failures.
func statusFor(err error) (int, *errs.Kind) {
	kind, ok := errs.KindOf(err)
	if !ok {
		return http.StatusInternalServerError, nil
	}
	switch kind.Category() {
	case errs.CategoryAuthorization:
		return http.StatusForbidden, &kind
	case errs.CategoryConfiguration:
		return http.StatusUnprocessableEntity, &kind
	case errs.CategoryResourceLimit:
		return http.StatusConflict, &kind
	case errs.CategoryState:
		if kind == errs.KindInvalidBorrower {
			return http.StatusForbidden, &kind
		}
		return http.StatusConflict, &kind
	case errs.CategoryNotFound:
		return http.StatusNotFound, &kind
	case errs.CategoryExternal:
		return http.StatusBadGateway, &kind
	}
	return http.StatusInternalServerError, &kind
}

func writeError(c echo.Context, err error) error {
	status, kind := statusFor(err)
	if kind == nil {
		c.Logger().Error(err)
		return c.JSON(status, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error(), Code: uint16(*kind)})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
