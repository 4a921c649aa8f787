package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// FirebaseAuthMiddleware creates an Echo middleware to verify Firebase ID
// tokens. On success the user id plus display-name/avatar claims are stored
// on the context for the handlers.
func FirebaseAuthMiddleware(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			c.Set("userID", token.UID)
			if name, ok := token.Claims["name"].(string); ok {
				c.Set("userName", name)
			}
			if picture, ok := token.Claims["picture"].(string); ok {
				c.Set("userAvatar", picture)
			}

			return next(c)
		}
	}
}
