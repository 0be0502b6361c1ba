package middleware

import (
	"context"

	"keel/business/rewards"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a trace ID. Client-supplied IDs are kept
// so mobile retries correlate across hops.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), rewards.TraceIDKey, requestID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(RequestIDHeader, requestID)
			c.Set("request_id", requestID)

			return next(c)
		}
	}
}
