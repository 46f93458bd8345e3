package repositories

import (
	"context"
	"errors"

	"sweetshop/internal/common"
	"sweetshop/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, userID string, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, userID string, id int64) error
	List(ctx context.Context, userID string) ([]*models.Customer, error)
}

type customerRepo struct {
	db DBTX
}

func NewCustomerRepo(db DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

// Create inserts the customer. A (user_id, email) uniqueness violation is
// reported as common.ErrDuplicateEmail.
func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (user_id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, customer.UserID, customer.Name, customer.Email, customer.Phone, customer.Address).
		Scan(&customer.ID, &customer.CreatedAt)
	return mapUniqueEmail(err)
}

func (r *customerRepo) GetByID(ctx context.Context, userID string, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, user_id, name, email, phone, address, created_at
		FROM customers
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).
		Scan(&customer.ID, &customer.UserID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4
		WHERE user_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, customer.Name, customer.Email, customer.Phone, customer.Address, customer.UserID, customer.ID)
	return mapUniqueEmail(err)
}

func (r *customerRepo) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM customers WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, userID string) ([]*models.Customer, error) {
	query := `
		SELECT id, user_id, name, email, phone, address, created_at
		FROM customers
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.UserID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func mapUniqueEmail(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrDuplicateEmail
	}
	return err
}
