package repositories

import (
	"context"

	"sweetshop/internal/models"
)

type SweetRepository interface {
	Create(ctx context.Context, sweet *models.Sweet) error
	GetByID(ctx context.Context, userID string, id int64) (*models.Sweet, error)
	Update(ctx context.Context, sweet *models.Sweet) error
	UpdateQuantity(ctx context.Context, userID string, id int64, quantity int) error
	Delete(ctx context.Context, userID string, id int64) error
	List(ctx context.Context, userID, category string) ([]*models.Sweet, error)
	Categories(ctx context.Context, userID string) ([]string, error)
}

type sweetRepo struct {
	db DBTX
}

func NewSweetRepo(db DBTX) SweetRepository {
	return &sweetRepo{db: db}
}

func (r *sweetRepo) Create(ctx context.Context, sweet *models.Sweet) error {
	query := `
		INSERT INTO sweets (user_id, name, description, price, quantity, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, sweet.UserID, sweet.Name, sweet.Description, sweet.Price, sweet.Quantity, sweet.Category, sweet.ImageURL).
		Scan(&sweet.ID, &sweet.CreatedAt, &sweet.UpdatedAt)
}

func (r *sweetRepo) GetByID(ctx context.Context, userID string, id int64) (*models.Sweet, error) {
	sweet := &models.Sweet{}
	query := `
		SELECT id, user_id, name, description, price, quantity, category, image_url, created_at, updated_at
		FROM sweets
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).
		Scan(&sweet.ID, &sweet.UserID, &sweet.Name, &sweet.Description, &sweet.Price, &sweet.Quantity, &sweet.Category, &sweet.ImageURL, &sweet.CreatedAt, &sweet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sweet, nil
}

func (r *sweetRepo) Update(ctx context.Context, sweet *models.Sweet) error {
	query := `
		UPDATE sweets
		SET name = $1, description = $2, price = $3, quantity = $4, category = $5, image_url = $6, updated_at = NOW()
		WHERE user_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, sweet.Name, sweet.Description, sweet.Price, sweet.Quantity, sweet.Category, sweet.ImageURL, sweet.UserID, sweet.ID)
	return err
}

// UpdateQuantity persists a ledger mutation for one sweet. Used inside the
// order transaction so reservations and restocks commit with the order.
func (r *sweetRepo) UpdateQuantity(ctx context.Context, userID string, id int64, quantity int) error {
	query := `
		UPDATE sweets
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, quantity, userID, id)
	return err
}

func (r *sweetRepo) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM sweets WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *sweetRepo) List(ctx context.Context, userID, category string) ([]*models.Sweet, error) {
	query := `
		SELECT id, user_id, name, description, price, quantity, category, image_url, created_at, updated_at
		FROM sweets
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sweets []*models.Sweet
	for rows.Next() {
		sweet := &models.Sweet{}
		if err := rows.Scan(&sweet.ID, &sweet.UserID, &sweet.Name, &sweet.Description, &sweet.Price, &sweet.Quantity, &sweet.Category, &sweet.ImageURL, &sweet.CreatedAt, &sweet.UpdatedAt); err != nil {
			return nil, err
		}
		sweets = append(sweets, sweet)
	}
	return sweets, rows.Err()
}

// Categories returns the distinct non-empty categories under one identity.
func (r *sweetRepo) Categories(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM sweets
		WHERE user_id = $1 AND category <> ''
		ORDER BY category
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
