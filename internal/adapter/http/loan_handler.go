package http

import (
	"encoding/json"
	"net/http"

	domain "microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// Amounts travel as JSON numbers or numeric strings; bounds are the
// engine's job so its error order is preserved.
type requestLoanReq struct {
	Amount            json.Number `json:"amount"             validate:"required,decimal"`
	InterestRate      json.Number `json:"interest_rate"      validate:"required,decimal"`
	RepaymentDuration uint64      `json:"repayment_duration"`
	GracePeriod       uint64      `json:"grace_period"`
	PenaltyRate       json.Number `json:"penalty_rate"       validate:"omitempty,decimal"`
	Currency          string      `json:"currency"           validate:"required"`
	CollateralAmount  json.Number `json:"collateral_amount"  validate:"omitempty,decimal"`
	TrustScore        uint64      `json:"trust_score"`
	PoolID            uint64      `json:"pool_id"`
}

type updateLoanReq struct {
	Amount            json.Number `json:"amount"             validate:"required,decimal"`
	InterestRate      json.Number `json:"interest_rate"      validate:"required,decimal"`
	RepaymentDuration uint64      `json:"repayment_duration"`
}

type repayLoanReq struct {
	Payment json.Number `json:"payment" validate:"required,decimal"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	env, ok, err := callerEnv(c)
	if !ok {
		return err
	}
	var req requestLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	id, err := h.uc.Request(c.Request().Context(), env, loan.RequestLoanInput{
		Amount:            mustDecimal(req.Amount),
		InterestRate:      mustDecimal(req.InterestRate),
		RepaymentDuration: req.RepaymentDuration,
		GracePeriod:       req.GracePeriod,
		PenaltyRate:       decimalOrZero(req.PenaltyRate),
		Currency:          domain.Currency(req.Currency),
		CollateralAmount:  decimalOrZero(req.CollateralAmount),
		TrustScore:        req.TrustScore,
		PoolID:            req.PoolID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]uint64{"loan_id": id})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, ok := loanIDParam(c)
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoanCount(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint64{"count": n})
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	env, ok, err := callerEnv(c)
	if !ok {
		return err
	}
	id, ok := loanIDParam(c)
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	var req updateLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), env, id, loan.UpdateLoanInput{
		Amount:            mustDecimal(req.Amount),
		InterestRate:      mustDecimal(req.InterestRate),
		RepaymentDuration: req.RepaymentDuration,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	env, ok, err := callerEnv(c)
	if !ok {
		return err
	}
	id, ok := loanIDParam(c)
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	var req repayLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Repay(c.Request().Context(), env, id, mustDecimal(req.Payment))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoanUpdate(c echo.Context) error {
	id, ok := loanIDParam(c)
	if !ok {
		return badRequest(c, "invalid loan_id path param")
	}
	dto, err := h.uc.GetUpdate(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListTransfers(c echo.Context) error {
	out, err := h.uc.Transfers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
