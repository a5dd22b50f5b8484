package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// SaveDeliveryDate stores an already validated YYYY-MM-DD date.
func (r *OrderRepo) SaveDeliveryDate(ctx context.Context, orderID int64, date string) error {
	query := `
		INSERT INTO order_delivery_dates (order_id, delivery_date, created_at)
		VALUES ($1, $2::date, NOW())
		ON CONFLICT (order_id) DO UPDATE
		SET delivery_date = EXCLUDED.delivery_date
	`
	if _, err := r.db.ExecContext(ctx, query, orderID, date); err != nil {
		return fmt.Errorf("save delivery date: %w", err)
	}
	return nil
}

// GetDeliveryDate returns nil when the order has no delivery date.
func (r *OrderRepo) GetDeliveryDate(ctx context.Context, orderID int64) (*models.OrderDeliveryDate, error) {
	query := `
		SELECT order_id, to_char(delivery_date, 'YYYY-MM-DD')
		FROM order_delivery_dates
		WHERE order_id = $1
	`
	var o models.OrderDeliveryDate
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&o.OrderID, &o.DeliveryDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select delivery date: %w", err)
	}
	return &o, nil
}
