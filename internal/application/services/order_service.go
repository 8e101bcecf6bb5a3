package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"tickets/internal/domain/order"
	"tickets/internal/domain/ticket"
)

type OrdersRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByReference(ctx context.Context, reference string) (*order.Order, error)
	List(ctx context.Context, page, pageSize int) ([]order.Order, error)
	Count(ctx context.Context) (int, error)
}

type TicketStore interface {
	SetRecord(ctx context.Context, key string, rec ticket.Record) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type OrderService struct {
	repo    OrdersRepository
	store   TicketStore
	bus     EventPublisher
	baseURL string
	logger  zerolog.Logger
}

func NewOrderService(
	repo OrdersRepository,
	store TicketStore,
	bus EventPublisher,
	baseURL string,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:    repo,
		store:   store,
		bus:     bus,
		baseURL: baseURL,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	EventName        string
	UserName         string
	Phone            string
	Email            string
	TicketType       string
	Price            decimal.Decimal
	Currency         string
	Reference        string // optional payment reference; generated when absent
	StartDate        string // pre-formatted display strings
	EndDate          string
	Description      string
	EventCoordinates string
}

type CreateOrderResult struct {
	Reference   string
	QRCodeURL   string
	UnlockToken string
}

// CreateOrder persists the order, caches the rendering record under the
// reference, and publishes the confirmation event. The one-time unlock
// token is returned once here and otherwise lives only in the cache.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if req.EventName == "" || req.UserName == "" || req.TicketType == "" {
		return nil, fmt.Errorf("event_name, user_name and ticket_type are required")
	}

	reference := req.Reference
	if reference == "" {
		reference = "ref-" + shortuuid.New()
	}
	password := newUnlockToken()
	ticketID := shortuuid.New()

	currency := req.Currency
	if currency == "" {
		currency = "GHS"
	}

	o := &order.Order{
		ID:            uuid.NewString(),
		Reference:     reference,
		UserName:      req.UserName,
		Phone:         req.Phone,
		Email:         req.Email,
		EventName:     req.EventName,
		TicketID:      ticketID,
		TicketType:    req.TicketType,
		Quantity:      1,
		Price:         req.Price,
		Currency:      currency,
		PaymentStatus: "COMPLETED",
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("persisting order: %w", err)
	}

	rec := ticket.Record{
		Reference:        reference,
		Name:             req.UserName,
		Phone:            req.Phone,
		EventName:        req.EventName,
		Description:      req.Description,
		EventCoordinates: req.EventCoordinates,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TicketID:         ticketID,
		TicketType:       req.TicketType,
		Password:         password,
	}
	if err := s.store.SetRecord(ctx, reference, rec); err != nil {
		return nil, fmt.Errorf("caching ticket record: %w", err)
	}

	qrCodeURL := s.baseURL + "/api/v1/receipt/" + reference

	err := s.bus.Publish(ctx, ticket.OrderCreated{
		Header:      ticket.NewEventHeader(),
		Reference:   reference,
		EventName:   req.EventName,
		UserName:    req.UserName,
		Email:       req.Email,
		QRCodeURL:   qrCodeURL,
		UnlockToken: password,
	})
	if err != nil {
		// The order stands; the confirmation email is best effort.
		s.logger.Err(err).Str("reference", reference).Msg("publishing order created event")
	}

	return &CreateOrderResult{
		Reference:   reference,
		QRCodeURL:   qrCodeURL,
		UnlockToken: password,
	}, nil
}

type OrdersPage struct {
	Orders     []order.Order
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

func (s *OrderService) ListOrders(ctx context.Context, page, pageSize int) (*OrdersPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("page and page_size must be positive")
	}

	orders, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting orders: %w", err)
	}

	return &OrdersPage{
		Orders:     orders,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// newUnlockToken mirrors the 6-character alphanumeric PDF unlock codes
// customers receive by mail.
func newUnlockToken() string {
	return shortuuid.New()[:6]
}
