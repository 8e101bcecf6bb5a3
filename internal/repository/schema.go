package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDBSchema(db *sqlx.DB) error {
	_, err := db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	reference VARCHAR(64) NOT NULL UNIQUE,
	user_name VARCHAR(255) NOT NULL,
	phone VARCHAR(32) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL DEFAULT '',
	event_name VARCHAR(255) NOT NULL DEFAULT '',
	ticket_id VARCHAR(64) NOT NULL,
	ticket_type VARCHAR(64) NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	price_amount NUMERIC(10, 2) NOT NULL,
	price_currency CHAR(3) NOT NULL,
	payment_status VARCHAR(32) NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}
	return nil
}
