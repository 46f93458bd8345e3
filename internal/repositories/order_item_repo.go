package repositories

import (
	"context"

	"sweetshop/internal/models"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
	ExistsBySweetID(ctx context.Context, sweetID int64) (bool, error)
}

type orderItemRepo struct {
	db DBTX
}

func NewOrderItemRepo(db DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, sweet_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, item.OrderID, item.SweetID, item.Quantity, item.Price).
		Scan(&item.ID)
}

// ListByOrderID returns the line items of an order already resolved under
// the caller's identity; items inherit their scope from the order.
func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, sweet_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.SweetID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ExistsBySweetID reports whether any line item still references the sweet,
// which blocks sweet deletion.
func (r *orderItemRepo) ExistsBySweetID(ctx context.Context, sweetID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM order_items WHERE sweet_id = $1)`
	err := r.db.QueryRow(ctx, query, sweetID).Scan(&exists)
	return exists, err
}
