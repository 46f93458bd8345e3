package handlers

import (
	"net/http"

	"sweetshop/internal/common"
	"sweetshop/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles HTTP requests for customers.
type CustomerHandlers struct {
	customerService services.CustomerServiceInterface
}

func NewCustomerHandlers(customerService services.CustomerServiceInterface) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

type customerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListCustomers handles GET /customers.
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	customers, err := h.customerService.ListCustomers(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /customers/:id.
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	customer, err := h.customerService.GetCustomer(ctx, userID, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /customers.
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Name == nil {
		return common.SendValidationError(c, "name", "name is required")
	}
	if req.Email == nil {
		return common.SendValidationError(c, "email", "email is required")
	}

	input := &services.CustomerInput{
		Name:  *req.Name,
		Email: *req.Email,
	}
	if req.Phone != nil {
		input.Phone = *req.Phone
	}
	if req.Address != nil {
		input.Address = *req.Address
	}

	customer, err := h.customerService.CreateCustomer(ctx, userID, input)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /customers/:id. Unspecified fields keep their
// previous value.
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	patch := &services.CustomerPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	customer, err := h.customerService.UpdateCustomer(ctx, userID, id, patch)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:id. Customers with orders
// cannot be deleted.
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.customerService.DeleteCustomer(ctx, userID, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Customer deleted successfully",
	})
}
