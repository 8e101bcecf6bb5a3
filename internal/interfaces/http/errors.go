package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"tickets/internal/domain/ticket"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorHandler maps domain sentinels onto status codes so handlers can
// return errors straight from the services.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, errorResponse{Error: msg})
		return
	}

	switch {
	case errors.Is(err, ticket.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, errorResponse{Error: "receipt not found"})
	case errors.Is(err, ticket.ErrCacheUnavailable):
		_ = c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "ticket store unavailable"})
	case errors.Is(err, ticket.ErrRender):
		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not render receipt"})
	default:
		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
