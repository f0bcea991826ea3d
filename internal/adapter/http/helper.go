package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"microfinance-ledger/internal/adapter/middleware"
	"microfinance-ledger/internal/domain/caller"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// callerEnv fetches the resolved caller or writes a 401.
func callerEnv(c echo.Context) (caller.Env, bool, error) {
	env, ok := middleware.CallerEnv(c)
	if !ok {
		return env, false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + middleware.HeaderCallerID})
	}
	return env, true, nil
}

func loanIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	return id, err == nil
}

// bindAndValidate decodes the body into req and runs the validator; on
// failure the response is already written and ok is false.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

func decimalOrZero(n json.Number) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	return mustDecimal(n)
}
