package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tickets/assets"
	"tickets/internal/application/services"
	"tickets/internal/domain/ticket"
	"tickets/internal/infrastructure/cache"
	"tickets/internal/infrastructure/event_publisher"
	"tickets/internal/interfaces/events"
	"tickets/internal/interfaces/http"
	"tickets/internal/observability"
	"tickets/internal/render"
	"tickets/internal/render/pdf"
	"tickets/internal/render/protect"
	"tickets/internal/render/qr"
	"tickets/internal/repository"
)

type App struct {
	watermillLogger watermill.LoggerAdapter
	logger          zerolog.Logger
	router          *message.Router
	srv             *http.Server
	db              *sqlx.DB
}

func NewApp(
	cfg Config,
	watermillLogger watermill.LoggerAdapter,
	redisClient *redis.Client,
	db *sqlx.DB,
	files FileStorage,
	mailer EmailSender,
) (*App, error) {
	logger := zerolog.New(os.Stdout)

	ticketStore := cache.NewStore(redisClient, cfg.TicketTTL)
	ordersRepo := repository.NewOrdersRepo(db)

	signer := qr.NewSigner([]byte(cfg.QRSigningSecret))
	encoder := qr.NewEncoder(assets.QRLogo)
	composer, err := pdf.NewComposer(assets.WebLogo, encoder, signer, pdf.Config{})
	if err != nil {
		return nil, fmt.Errorf("building composer: %w", err)
	}

	metrics := observability.NewRenderMetrics(prometheus.DefaultRegisterer)
	renderer := render.NewRenderer(
		ticketStore,
		composer,
		protect.NewProtector(),
		ticket.DefaultProtectionPolicy(),
		logger,
		metrics,
	)

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, err
	}

	var publisher message.Publisher
	publisher, err = redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, watermillLogger)
	if err != nil {
		return nil, err
	}

	publisher = event_publisher.CorrelationPublisherDecorator{
		Publisher: publisher,
	}
	eventBus, err := events.NewEventBus(publisher, watermillLogger)
	if err != nil {
		return nil, err
	}

	orderService := services.NewOrderService(
		ordersRepo,
		ticketStore,
		eventBusPublisher{eventBus},
		cfg.BaseURL,
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	srv := http.NewServer(
		e,
		":"+cfg.Port,
		orderService,
		renderer,
		eventBusPublisher{eventBus},
		ticketStore,
		cfg.APIKey,
		logger,
		router.IsRunning,
	)

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware(logger))
	router.AddMiddleware(events.LoggingMiddleware)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	// skip marshalling errors before retrying
	router.AddMiddleware(events.SkipMarshallingErrorsMiddleware)

	processor, err := events.NewEventProcessor(router, redisClient, events.NewMarshaler(), watermillLogger)
	if err != nil {
		return nil, err
	}
	err = processor.AddHandlers(
		events.BulkReceiptHandler(renderer, files),
		events.OrderConfirmationHandler(mailer),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		watermillLogger: watermillLogger,
		logger:          logger,
		router:          router,
		srv:             srv,
		db:              db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := repository.InitializeDBSchema(a.db)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info().Msg("starting router")

		return a.router.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("router is running")

		a.logger.Info().Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()

		err := a.srv.Stop(ctx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}

		return err
	})

	return g.Wait()
}

// eventBusPublisher adapts the cqrs bus to the plain Publish(ctx, event)
// seam the service and handlers depend on.
type eventBusPublisher struct {
	bus *cqrs.EventBus
}

func (p eventBusPublisher) Publish(ctx context.Context, event any) error {
	return p.bus.Publish(ctx, event)
}
