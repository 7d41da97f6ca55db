package middleware

import (
	"context"
	"smelterAdvisor/business/advisor"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID sets X-Request-Id (generating one when absent) and exposes it as the advisor trace ID.
func RequestID() echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := context.WithValue(c.Request().Context(), advisor.TraceIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}
