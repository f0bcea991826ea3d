package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health      *Handler
	Loans       *LoanHandler
	Params      *ParamsHandler
	Authorities *AuthorityHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)

	e.POST("/loans", h.Loans.CreateLoan)
	e.GET("/loans/count", h.Loans.GetLoanCount)
	e.GET("/loans/:loan_id", h.Loans.GetLoan)
	e.PUT("/loans/:loan_id", h.Loans.UpdateLoan)
	e.POST("/loans/:loan_id/repayments", h.Loans.RepayLoan)
	e.GET("/loans/:loan_id/update", h.Loans.GetLoanUpdate)
	e.GET("/transfers", h.Loans.ListTransfers)

	e.GET("/params", h.Params.GetParams)
	e.POST("/params/authority", h.Params.SetAuthorityContract)
	e.PUT("/params/issuance-fee", h.Params.SetIssuanceFee)
	e.PUT("/params/min-trust-score", h.Params.SetMinTrustScore)
	e.PUT("/params/max-interest-rate", h.Params.SetMaxInterestRate)
	e.PUT("/params/duration-range", h.Params.SetRepaymentDurationRange)

	e.GET("/authorities", h.Authorities.ListAuthorities)
	e.POST("/authorities", h.Authorities.AddAuthority)
	e.DELETE("/authorities/:principal", h.Authorities.RemoveAuthority)
}
