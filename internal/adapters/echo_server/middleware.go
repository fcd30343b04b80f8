package echoserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"airbnb_hub/internal/adapters/observability"
)

// Metrics records every request once the response is committed. It sits
// outside Logger, which resolves handler errors into responses.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		route := c.Path()
		if route == "" {
			route = c.Request().URL.Path
		}
		observability.ObserveHTTP(route, c.Request().Method, statusOf(c, err), time.Since(start))
		return err
	}
}

// Logger writes the http_request event and stores a request-scoped logger
// in the request context. Handler errors are passed to echo's error handler
// here so the logged status is the one sent.
func Logger(l zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rl := l.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			c.SetRequest(req.WithContext(rl.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				c.Error(err)
			}
			ev := rl.Info()
			if err != nil {
				ev = rl.Warn().Err(err)
			}
			ev.Str("route", c.Path()).
				Str("method", req.Method).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("remote", c.RealIP()).
				Str("ua", req.UserAgent()).
				Msg("http_request")
			return nil
		}
	}
}

// RateLimit applies one token bucket to every request.
func RateLimit(rps int) echo.MiddlewareFunc {
	lim := rate.NewLimiter(rate.Limit(rps), rps)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !lim.Allow() {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusTooManyRequests, "request rate limit exceeded")
			}
			return next(c)
		}
	}
}

func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
