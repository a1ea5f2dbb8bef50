package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

// IdentityContextKey is where the auth middleware stores the verified token
// payload on the echo context.
const IdentityContextKey = "identity"

// ctxIdentity extracts the identity claims injected by the auth middleware.
// A missing or mistyped value means the middleware did not run; reject with
// 401 before touching any service.
func ctxIdentity(c echo.Context) (domain.TokenPayload, error) {
	identity, ok := c.Get(IdentityContextKey).(domain.TokenPayload)
	if !ok || identity.EmailAddress == "" {
		return domain.TokenPayload{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
