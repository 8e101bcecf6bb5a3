package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"tickets/internal/domain/ticket"
)

func (s *Server) GetReceiptHandler(c echo.Context) error {
	return s.streamReceipt(c, ticket.VariantStandard)
}

func (s *Server) GetPOSReceiptHandler(c echo.Context) error {
	return s.streamReceipt(c, ticket.VariantPOS)
}

func (s *Server) GetQRReceiptHandler(c echo.Context) error {
	return s.streamReceipt(c, ticket.VariantMinimal)
}

// streamReceipt renders on the fly and hands the bytes straight to the
// response. Nothing is persisted server side.
func (s *Server) streamReceipt(c echo.Context, v ticket.Variant) error {
	ctx := c.Request().Context()

	reference := c.Param("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference is required")
	}

	receipt, err := s.renderer.Render(ctx, reference, v)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", receipt.Filename))

	return c.Blob(http.StatusOK, receipt.ContentType, receipt.Data)
}
