package repositories

import (
	"context"

	"sweetshop/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, userID string, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, userID string, id int64, status string) error
	UpdateTotal(ctx context.Context, userID string, id int64, total float64) error
	Delete(ctx context.Context, userID string, id int64) error
	List(ctx context.Context, userID string, customerID *int64) ([]*models.Order, error)
	ExistsByCustomerID(ctx context.Context, customerID int64) (bool, error)
}

type orderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, customer_id, total_amount, status, order_date)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, order_date
	`
	return r.db.QueryRow(ctx, query, order.UserID, order.CustomerID, order.TotalAmount, order.Status).
		Scan(&order.ID, &order.OrderDate)
}

func (r *orderRepo) GetByID(ctx context.Context, userID string, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, customer_id, total_amount, status, order_date
		FROM orders
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).
		Scan(&order.ID, &order.UserID, &order.CustomerID, &order.TotalAmount, &order.Status, &order.OrderDate)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, userID string, id int64, status string) error {
	query := `UPDATE orders SET status = $1 WHERE user_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, status, userID, id)
	return err
}

// UpdateTotal sets the header total once all line items of the enclosing
// transaction have been accumulated.
func (r *orderRepo) UpdateTotal(ctx context.Context, userID string, id int64, total float64) error {
	query := `UPDATE orders SET total_amount = $1 WHERE user_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, total, userID, id)
	return err
}

// Delete removes the order header; order_items cascade with it.
func (r *orderRepo) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM orders WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *orderRepo) List(ctx context.Context, userID string, customerID *int64) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, customer_id, total_amount, status, order_date
		FROM orders
		WHERE user_id = $1 AND ($2::BIGINT IS NULL OR customer_id = $2)
		ORDER BY order_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.CustomerID, &order.TotalAmount, &order.Status, &order.OrderDate); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// ExistsByCustomerID reports whether any order still references the
// customer. Deliberately unscoped: customer ids are globally unique.
func (r *orderRepo) ExistsByCustomerID(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)`
	err := r.db.QueryRow(ctx, query, customerID).Scan(&exists)
	return exists, err
}
