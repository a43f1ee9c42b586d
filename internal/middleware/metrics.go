package middleware

import (
	"strconv"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"

	"github.com/labstack/echo/v4"
)

// RequestMetrics はルート単位でリクエスト数と処理時間を数える。
func RequestMetrics(m *metrics.Collectors) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.Requests.WithLabelValues(path, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(path).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}
