package middleware

import (
	"net/http"
	"smelterAdvisor/pkg/logger"
	"smelterAdvisor/pkg/utils"
	"strings"

	jsonres "smelterAdvisor/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseJWT(token string) (*utils.Claims, error)
}

// AuthMiddleware requires a valid bearer JWT and stores its subject and role on the context.
func AuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			claims, err := parser.ParseJWT(tokenParts[1])
			if err != nil {
				logger.Warn("Rejected operator token", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid or expired token", nil,
				))
			}

			c.Set("operator", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// RoleRequired allows the request only when AuthMiddleware stored the given role.
func RoleRequired(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("role").(string)
			if !ok || !strings.EqualFold(roleStr, role) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Operator access required", nil,
				))
			}

			return next(c)
		}
	}
}
