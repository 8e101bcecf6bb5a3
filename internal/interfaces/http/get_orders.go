package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"tickets/internal/domain/order"
)

type GetOrdersResponse struct {
	Orders     []order.Order `json:"orders"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

func (s *Server) GetOrdersHandler(c echo.Context) error {
	ctx := c.Request().Context()

	page := intQueryParam(c, "page", 1)
	pageSize := intQueryParam(c, "page_size", 20)

	result, err := s.orderService.ListOrders(ctx, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, GetOrdersResponse{
		Orders:     result.Orders,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
