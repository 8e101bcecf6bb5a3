package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAPIKey guards the order management endpoints. Receipt downloads
// stay open; the reference itself is the capability.
func (s *Server) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.apiKey == "" {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "api key is not configured")
		}

		provided := c.Request().Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.apiKey)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
		}

		return next(c)
	}
}
