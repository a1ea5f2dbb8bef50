package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/runjamaica/auth-api/internal/api/handler"
	"github.com/runjamaica/auth-api/internal/core/domain"
	"github.com/runjamaica/auth-api/internal/core/ports"
)

// Auth validates the bearer token and injects its identity claims into the
// request context. Only ACCESS-purpose tokens are accepted: a refresh token
// is a valid signature but the wrong credential for API calls.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			payload, err := codec.Verify(parts[1])
			if err != nil || payload.Purpose != domain.PurposeAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(handler.IdentityContextKey, payload)

			return next(c)
		}
	}
}
