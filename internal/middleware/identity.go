package middleware

import (
	"strings"

	"sweetshop/internal/common"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the caller's identity. It is trusted as-is; there is
// no verification beyond presence.
const HeaderUserID = "X-User-ID"

// RequireIdentity extracts the identity header and places it on the request
// context. A missing header fails the request with 401 before any handler
// runs.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if userID == "" {
				return common.SendUnauthorizedError(c, "User ID required")
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
