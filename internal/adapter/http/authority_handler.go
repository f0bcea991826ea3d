package http

import (
	"net/http"

	"microfinance-ledger/internal/domain/authority"
	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/usecase/params"

	"github.com/labstack/echo/v4"
)

// AuthorityHandler administers the verified-authority set. Only the bound
// authority contract may change it.
type AuthorityHandler struct {
	registry authority.Registry
	params   *params.Usecase
}

func NewAuthorityHandler(registry authority.Registry, params *params.Usecase) *AuthorityHandler {
	return &AuthorityHandler{registry: registry, params: params}
}

type addAuthorityReq struct {
	Principal string `json:"principal" validate:"required,principal"`
}

func (h *AuthorityHandler) ListAuthorities(c echo.Context) error {
	out, err := h.registry.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"authorities": out})
}

func (h *AuthorityHandler) AddAuthority(c echo.Context) error {
	if ok, err := h.requireBoundAuthority(c); !ok {
		return err
	}
	var req addAuthorityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if err := h.registry.Add(c.Request().Context(), req.Principal); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, req)
}

func (h *AuthorityHandler) RemoveAuthority(c echo.Context) error {
	if ok, err := h.requireBoundAuthority(c); !ok {
		return err
	}
	if err := h.registry.Remove(c.Request().Context(), c.Param("principal")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthorityHandler) requireBoundAuthority(c echo.Context) (bool, error) {
	env, ok, err := callerEnv(c)
	if !ok {
		return false, err
	}
	dto, err := h.params.Get(c.Request().Context())
	if err != nil {
		return false, writeError(c, err)
	}
	if dto.AuthorityContract == "" {
		return false, writeError(c, errs.ErrAuthorityNotVerified)
	}
	if dto.AuthorityContract != env.Principal {
		return false, writeError(c, errs.ErrNotAuthorized)
	}
	return true, nil
}
