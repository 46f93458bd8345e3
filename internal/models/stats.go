package models

// DashboardStats aggregates one identity's data for the dashboard endpoint.
// TotalRevenue is zero when the identity has no orders.
type DashboardStats struct {
	TotalSweets    int     `json:"total_sweets"`
	TotalCustomers int     `json:"total_customers"`
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
}
