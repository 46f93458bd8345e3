package handlers

import (
	"net/http"
	"strconv"

	"sweetshop/internal/common"
	"sweetshop/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders.
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// ListOrders handles GET /orders with an optional customer_id filter.
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	var customerID *int64
	if param := c.QueryParam("customer_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return common.SendValidationError(c, "customer_id", "customer_id must be numeric")
		}
		customerID = &id
	}

	orders, err := h.orderService.ListOrders(ctx, userID, customerID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id.
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrder(ctx, userID, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /orders. The whole order is one transaction:
// on any failure nothing is persisted, including inventory decrements.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	var req struct {
		CustomerID int64                     `json:"customer_id"`
		Status     string                    `json:"status"`
		Items      []services.OrderItemInput `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.CreateOrder(ctx, userID, &services.OrderInput{
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Items:      req.Items,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /orders/:id; only the status can change.
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.UpdateStatus(ctx, userID, id, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id and restores inventory.
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.orderService.DeleteOrder(ctx, userID, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Order deleted successfully",
	})
}
