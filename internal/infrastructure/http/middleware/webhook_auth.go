package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// WebhookAuth enforces a shared secret header on webhook endpoints. With an
// empty secret the middleware is a no-op, since some providers sign payloads
// instead of sending a token.
func WebhookAuth(headerName, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}
			got := c.Request().Header.Get(headerName)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "invalid webhook credentials",
				})
			}
			return next(c)
		}
	}
}
