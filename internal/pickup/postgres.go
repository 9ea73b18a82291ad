package pickup

import (
	"context"
	"fmt"

	"burger-pos/internal/common/db"
	"burger-pos/internal/domain"
)

// PostgresSink keeps pickup codes in a table keyed by order number.
type PostgresSink struct {
	conn *db.Conn
}

func NewPostgresSink(ctx context.Context, conn *db.Conn) (*PostgresSink, error) {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pickup_codes (
			order_number INT PRIMARY KEY,
			code         TEXT NOT NULL,
			issued_at    TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ensure pickup_codes table: %w", err)
	}
	return &PostgresSink{conn: conn}, nil
}

func (s *PostgresSink) Store(ctx context.Context, cred domain.PickupCredential) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO pickup_codes (order_number, code, issued_at)
		VALUES ($1, $2, $3)
	`, cred.OrderNumber, cred.Code, cred.IssuedAt)
	if err != nil {
		return fmt.Errorf("insert pickup code: %w", err)
	}
	return nil
}
