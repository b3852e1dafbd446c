package middleware

import (
	"net/http"
	"strings"

	"marketplace-be/internal/metrics"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "jwtClaims"

// ClaimsFromContext returns the token claims stored by the auth middleware.
func ClaimsFromContext(c echo.Context) (*user.CustomClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*user.CustomClaims)
	return claims, ok
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "missing authorization token",
			})
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			metrics.RecordAuthAttempt(false)
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid or expired token",
			})
		}

		metrics.RecordAuthAttempt(true)
		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// OptionalAuth attaches claims when a valid token is present and lets the
// request through either way.
func OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return next(c)
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			return next(c)
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}
