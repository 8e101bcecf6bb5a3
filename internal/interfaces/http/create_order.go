package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"tickets/internal/application/services"
)

type CreateOrderRequest struct {
	EventName        string          `json:"event_name"`
	UserName         string          `json:"user_name"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	TicketType       string          `json:"ticket_type"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	Reference        string          `json:"reference"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Description      string          `json:"description"`
	EventCoordinates string          `json:"event_coordinates"`
}

type CreateOrderResponse struct {
	Reference   string `json:"reference"`
	QRCodeURL   string `json:"qr_code_url"`
	UnlockToken string `json:"unlock_token"`
}

func (s *Server) CreateOrderHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request CreateOrderRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	result, err := s.orderService.CreateOrder(ctx, services.CreateOrderRequest{
		EventName:        request.EventName,
		UserName:         request.UserName,
		Phone:            request.Phone,
		Email:            request.Email,
		TicketType:       request.TicketType,
		Price:            request.Price,
		Currency:         request.Currency,
		Reference:        request.Reference,
		StartDate:        request.StartDate,
		EndDate:          request.EndDate,
		Description:      request.Description,
		EventCoordinates: request.EventCoordinates,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated,
		CreateOrderResponse{
			Reference:   result.Reference,
			QRCodeURL:   result.QRCodeURL,
			UnlockToken: result.UnlockToken,
		},
	)
}
