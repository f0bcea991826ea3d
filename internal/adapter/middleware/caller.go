package middleware

import (
	"net/http"
	"strings"

	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/pkg/clock"

	"github.com/labstack/echo/v4"
)

const callerEnvKey = "caller_env"

// CallerMiddleware resolves the calling principal from Ax-Caller-Id and
// stamps the request with the current time unit. Requests without the
// header pass through anonymous.
func CallerMiddleware(clk clock.Clock) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderCallerID))
			if id == "" {
				return next(c)
			}
			if !caller.ValidPrincipal(id) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderCallerID})
			}
			c.Set(callerEnvKey, caller.Env{Principal: id, Now: clk.Now()})
			return next(c)
		}
	}
}

// CallerEnv returns the env set by CallerMiddleware.
func CallerEnv(c echo.Context) (caller.Env, bool) {
	env, ok := c.Get(callerEnvKey).(caller.Env)
	return env, ok
}

// WithCallerEnv stores env on c directly; handler tests use it in place of
// the middleware.
func WithCallerEnv(c echo.Context, env caller.Env) { c.Set(callerEnvKey, env) }
