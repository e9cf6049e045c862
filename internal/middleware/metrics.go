package middleware

import (
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/labstack/echo/v4"

	"github.com/chirper-app/backend/internal/apperrors"
)

// RequestMetrics counts requests per route and status. Scraped via the
// /metrics endpoint.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err, c)
			}
			name := fmt.Sprintf(`http_requests_total{method=%q,path=%q,status="%d"}`,
				c.Request().Method, c.Path(), status)
			metrics.GetOrCreateCounter(name).Inc()

			return err
		}
	}
}

func statusOf(err error, c echo.Context) int {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Status()
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	if c.Response().Committed {
		return c.Response().Status
	}
	return 500
}
