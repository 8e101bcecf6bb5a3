package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"tickets/internal/application/services"
	"tickets/internal/domain/ticket"
	"tickets/internal/observability"
	"tickets/internal/render"
)

type ReceiptRenderer interface {
	Render(ctx context.Context, reference string, v ticket.Variant) (*render.Receipt, error)
}

type BulkPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	e    *echo.Echo
	addr string

	orderService *services.OrderService
	renderer     ReceiptRenderer
	bus          BulkPublisher
	apiKey       string
	logger       zerolog.Logger
}

func NewServer(
	e *echo.Echo,
	addr string,
	orderService *services.OrderService,
	renderer ReceiptRenderer,
	bus BulkPublisher,
	cache Pinger,
	apiKey string,
	logger zerolog.Logger,
	routerIsRunning func() bool,
) *Server {
	srv := &Server{
		e:            e,
		addr:         addr,
		orderService: orderService,
		renderer:     renderer,
		bus:          bus,
		apiKey:       apiKey,
		logger:       logger,
	}

	api := e.Group("/api/v1")
	api.POST("/order", srv.CreateOrderHandler, srv.RequireAPIKey)
	api.GET("/orders", srv.GetOrdersHandler, srv.RequireAPIKey)
	api.GET("/receipt/:reference", srv.GetReceiptHandler)
	api.GET("/receipt/:reference/pos", srv.GetPOSReceiptHandler)
	api.GET("/receipt/:reference/qr", srv.GetQRReceiptHandler)
	api.POST("/receipts/bulk", srv.BulkReceiptsHandler, srv.RequireAPIKey)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		if err := cache.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "cache is not reachable")
		}
		return c.String(http.StatusOK, "ok")
	})

	// logging middleware, seeds a correlation-scoped child of the app
	// logger into the request context
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlationID := c.Request().Header.Get("Correlation-ID")
			if correlationID == "" {
				correlationID = uuid.NewString()
			}
			ctx := observability.ContextWithCorrelationID(c.Request().Context(), correlationID)
			logger := srv.logger.With().
				Str("correlation_id", correlationID).
				Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(ctx)))

			logger.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("Handling a request")

			err := next(c)

			if err != nil {
				logger.Error().
					Err(err).
					Str("path", c.Request().URL.Path).
					Msg("Request handling error")
			}

			return err
		}
	})

	e.HTTPErrorHandler = srv.errorHandler

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
