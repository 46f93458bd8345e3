package repositories

import (
	"context"

	"sweetshop/internal/models"
)

type StatsRepository interface {
	GetStats(ctx context.Context, userID string) (*models.DashboardStats, error)
	ListIdentities(ctx context.Context) ([]string, error)
}

type statsRepo struct {
	db DBTX
}

func NewStatsRepo(db DBTX) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	query := `
		SELECT
			(SELECT COUNT(*) FROM sweets WHERE user_id = $1),
			(SELECT COUNT(*) FROM customers WHERE user_id = $1),
			(SELECT COUNT(*) FROM orders WHERE user_id = $1),
			(SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status = 'pending'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE user_id = $1)
	`
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&stats.TotalSweets, &stats.TotalCustomers, &stats.TotalOrders, &stats.PendingOrders, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ListIdentities returns every owner identity present in the store. Used by
// the stats refresh job to warm the dashboard cache.
func (r *statsRepo) ListIdentities(ctx context.Context) ([]string, error) {
	query := `
		SELECT user_id FROM sweets
		UNION
		SELECT user_id FROM customers
		UNION
		SELECT user_id FROM orders
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
