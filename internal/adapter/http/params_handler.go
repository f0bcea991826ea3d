package http

import (
	"encoding/json"
	"net/http"

	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/usecase/params"

	"github.com/labstack/echo/v4"
)

type ParamsHandler struct{ uc *params.Usecase }

func NewParamsHandler(uc *params.Usecase) *ParamsHandler { return &ParamsHandler{uc: uc} }

type setAuthorityReq struct {
	AuthorityContract string `json:"authority_contract" validate:"required,principal"`
}

type setIssuanceFeeReq struct {
	IssuanceFee json.Number `json:"issuance_fee" validate:"required,decimal"`
}

// MinTrustScore is decoded loosely so a negative value reaches the engine's
// own error instead of a decode failure.
type setMinTrustScoreReq struct {
	MinTrustScore json.Number `json:"min_trust_score" validate:"required,decimal"`
}

type setMaxInterestRateReq struct {
	MaxInterestRate json.Number `json:"max_interest_rate" validate:"required,decimal"`
}

type setDurationRangeReq struct {
	MinRepaymentDuration uint64 `json:"min_repayment_duration"`
	MaxRepaymentDuration uint64 `json:"max_repayment_duration"`
}

func (h *ParamsHandler) GetParams(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// SetAuthorityContract is open to any caller; the binding itself is
// first-wins.
func (h *ParamsHandler) SetAuthorityContract(c echo.Context) error {
	env, ok, err := callerEnv(c)
	if !ok {
		return err
	}
	var req setAuthorityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.respond(c)(h.uc.SetAuthorityContract(c.Request().Context(), env, req.AuthorityContract))
}

func (h *ParamsHandler) SetIssuanceFee(c echo.Context) error {
	env, ok, err := h.authorityCaller(c)
	if !ok {
		return err
	}
	var req setIssuanceFeeReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.respond(c)(h.uc.SetIssuanceFee(c.Request().Context(), env, mustDecimal(req.IssuanceFee)))
}

func (h *ParamsHandler) SetMinTrustScore(c echo.Context) error {
	env, ok, err := h.authorityCaller(c)
	if !ok {
		return err
	}
	var req setMinTrustScoreReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	score := mustDecimal(req.MinTrustScore)
	if score.IsNegative() || !score.IsInteger() || !score.BigInt().IsUint64() {
		return writeError(c, errs.ErrInvalidMinScore)
	}
	return h.respond(c)(h.uc.SetMinTrustScore(c.Request().Context(), env, score.BigInt().Uint64()))
}

func (h *ParamsHandler) SetMaxInterestRate(c echo.Context) error {
	env, ok, err := h.authorityCaller(c)
	if !ok {
		return err
	}
	var req setMaxInterestRateReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.respond(c)(h.uc.SetMaxInterestRate(c.Request().Context(), env, mustDecimal(req.MaxInterestRate)))
}

func (h *ParamsHandler) SetRepaymentDurationRange(c echo.Context) error {
	env, ok, err := h.authorityCaller(c)
	if !ok {
		return err
	}
	var req setDurationRangeReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.respond(c)(h.uc.SetRepaymentDurationRange(c.Request().Context(), env, req.MinRepaymentDuration, req.MaxRepaymentDuration))
}

// authorityCaller resolves the caller and, once an authority is bound,
// requires the caller to be it. While unbound the request goes through so
// the engine reports the missing binding.
func (h *ParamsHandler) authorityCaller(c echo.Context) (caller.Env, bool, error) {
	env, ok, err := callerEnv(c)
	if !ok {
		return env, false, err
	}
	dto, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return env, false, writeError(c, err)
	}
	if dto.AuthorityContract != "" && dto.AuthorityContract != env.Principal {
		return env, false, writeError(c, errs.ErrNotAuthorized)
	}
	return env, true, nil
}

func (h *ParamsHandler) respond(c echo.Context) func(*params.ParamsDTO, error) error {
	return func(dto *params.ParamsDTO, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dto)
	}
}
