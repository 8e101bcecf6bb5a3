package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	domain "tickets/internal/domain/order"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is the persistence model for the orders table.
type Order struct {
	ID            uuid.UUID `db:"id"`
	Reference     string    `db:"reference"`
	UserName      string    `db:"user_name"`
	Phone         string    `db:"phone"`
	Email         string    `db:"email"`
	EventName     string    `db:"event_name"`
	TicketID      string    `db:"ticket_id"`
	TicketType    string    `db:"ticket_type"`
	Quantity      int       `db:"quantity"`
	PriceAmount   string    `db:"price_amount"`
	PriceCurrency string    `db:"price_currency"`
	PaymentStatus string    `db:"payment_status"`
	CreatedAt     time.Time `db:"created_at"`
}

type OrdersRepo struct {
	db *sqlx.DB
}

func NewOrdersRepo(db *sqlx.DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

// Create inserts a new order record.
func (r *OrdersRepo) Create(ctx context.Context, o *domain.Order) error {
	model, err := domainToModel(o)
	if err != nil {
		return fmt.Errorf("failed to convert domain to model: %w", err)
	}

	query := `
        INSERT INTO orders (
            id, reference, user_name, phone, email, event_name,
            ticket_id, ticket_type, quantity, price_amount, price_currency,
            payment_status, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
        )`

	_, err = r.db.ExecContext(ctx, query,
		model.ID,
		model.Reference,
		model.UserName,
		model.Phone,
		model.Email,
		model.EventName,
		model.TicketID,
		model.TicketType,
		model.Quantity,
		model.PriceAmount,
		model.PriceCurrency,
		model.PaymentStatus,
		model.CreatedAt,
	)
	return err
}

func (r *OrdersRepo) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	var model Order
	query := `
        SELECT id, reference, user_name, phone, email, event_name,
               ticket_id, ticket_type, quantity, price_amount, price_currency,
               payment_status, created_at
        FROM orders
        WHERE reference = $1`

	if err := r.db.GetContext(ctx, &model, query, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
		}
		return nil, err
	}
	return modelToDomain(&model)
}

// List returns one page of orders, newest first.
func (r *OrdersRepo) List(ctx context.Context, page, pageSize int) ([]domain.Order, error) {
	var models []Order
	query := `
        SELECT id, reference, user_name, phone, email, event_name,
               ticket_id, ticket_type, quantity, price_amount, price_currency,
               payment_status, created_at
        FROM orders
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	offset := (page - 1) * pageSize
	if err := r.db.SelectContext(ctx, &models, query, pageSize, offset); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(models))
	for i := range models {
		o, err := modelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *OrdersRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, err
	}
	return count, nil
}

func domainToModel(o *domain.Order) (*Order, error) {
	id, err := uuid.Parse(o.ID)
	if err != nil {
		return nil, err
	}
	return &Order{
		ID:            id,
		Reference:     o.Reference,
		UserName:      o.UserName,
		Phone:         o.Phone,
		Email:         o.Email,
		EventName:     o.EventName,
		TicketID:      o.TicketID,
		TicketType:    o.TicketType,
		Quantity:      o.Quantity,
		PriceAmount:   o.Price.String(),
		PriceCurrency: o.Currency,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	}, nil
}

func modelToDomain(m *Order) (*domain.Order, error) {
	price, err := decimal.NewFromString(m.PriceAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid price amount %q: %w", m.PriceAmount, err)
	}
	return &domain.Order{
		ID:            m.ID.String(),
		Reference:     m.Reference,
		UserName:      m.UserName,
		Phone:         m.Phone,
		Email:         m.Email,
		EventName:     m.EventName,
		TicketID:      m.TicketID,
		TicketType:    m.TicketType,
		Quantity:      m.Quantity,
		Price:         price,
		Currency:      m.PriceCurrency,
		PaymentStatus: m.PaymentStatus,
		CreatedAt:     m.CreatedAt,
	}, nil
}
