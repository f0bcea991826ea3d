package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapterauth "microfinance-ledger/internal/adapter/authority"
	"microfinance-ledger/internal/adapter/middleware"
	"microfinance-ledger/internal/adapter/repository/memory"
	"microfinance-ledger/internal/domain/params"
	"microfinance-ledger/internal/usecase/loan"
	ucparams "microfinance-ledger/internal/usecase/params"
	"microfinance-ledger/pkg/clock"

	"github.com/labstack/echo/v4"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const (
	authorityA = "ST1AUTHORITY"
	borrowerB  = "ST1BORROWER"
	strangerC  = "ST1STRANGER"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type testServer struct {
	e      *echo.Echo
	clk    *clock.Manual
	store  *memory.Store
	oracle *adapterauth.StaticOracle
}

// newTestServer wires every route over a memory store. With bound set the
// authority contract is A; B and C are verified authorities either way.
func newTestServer(t *testing.T, bound bool) *testServer {
	t.Helper()
	ps := params.Defaults()
	if bound {
		if err := ps.BindAuthority(authorityA); err != nil {
			t.Fatalf("bind: %v", err)
		}
	}
	store := memory.New(ps)
	oracle := adapterauth.NewStaticOracle(borrowerB, strangerC)
	clk := clock.NewManual(0)
	log, _ := logtest.NewNullLogger()

	paramsUC := ucparams.NewUsecase(store, store.Repos().Params, log)
	e := newEchoWithValidator()
	e.Use(middleware.CallerMiddleware(clk))
	RegisterRoutes(e, Handlers{
		Health:      NewHandler(nil),
		Loans:       NewLoanHandler(loan.NewUsecase(store, store.Repos(), oracle, log)),
		Params:      NewParamsHandler(paramsUC),
		Authorities: NewAuthorityHandler(oracle, paramsUC),
	})
	return &testServer{e: e, clk: clk, store: store, oracle: oracle}
}

func (s *testServer) do(method, path, callerID string, body any) *httptest.ResponseRecorder {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if callerID != "" {
		req.Header.Set(middleware.HeaderCallerID, callerID)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return v
}

// expectError asserts status and domain code of an error response.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code uint16) ErrorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, status, rec.Body.String())
	}
	got := decodeBody[ErrorResponse](t, rec)
	if got.Code != code {
		t.Fatalf("code = %d, want %d; body=%s", got.Code, code, rec.Body.String())
	}
	return got
}

func loanBody() map[string]any {
	return map[string]any{
		"amount":             1000,
		"interest_rate":      5,
		"repayment_duration": 60,
		"grace_period":       7,
		"penalty_rate":       2,
		"currency":           "STX",
		"collateral_amount":  1500,
		"trust_score":        75,
		"pool_id":            1,
	}
}

func containsFieldMsg(fe []FieldError, field, substr string) bool {
	for _, e := range fe {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
