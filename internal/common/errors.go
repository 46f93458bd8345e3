package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error kinds surfaced by the service layer. Handlers translate them into
// HTTP statuses; anything unrecognized becomes a 500.
var (
	// ErrNotFound covers both a genuinely absent id and an id owned by a
	// different identity. The two cases are deliberately indistinguishable.
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrSweetInUse        = errors.New("cannot delete sweet that is used in orders")
	ErrCustomerInUse     = errors.New("cannot delete customer that has orders")
	ErrValidation        = errors.New("validation failed")
)

// ErrorResponse is the envelope every non-2xx body uses.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

func NewErrorResponse(code, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a 400 with a per-field detail.
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{field: message}
	return c.JSON(http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a generic 400.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("CLIENT_ERROR", message, nil))
}

// SendUnauthorizedError sends a 401.
func SendUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("UNAUTHORIZED", message, nil))
}

// SendNotFoundError sends a 404 for the named resource.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendError maps a service error onto the HTTP surface.
func SendError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, ErrInsufficientStock):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("INSUFFICIENT_STOCK", err.Error(), nil))
	case errors.Is(err, ErrDuplicateEmail):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("DUPLICATE_EMAIL", err.Error(), nil))
	case errors.Is(err, ErrSweetInUse), errors.Is(err, ErrCustomerInUse):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("CONFLICT", err.Error(), nil))
	case errors.Is(err, ErrValidation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", err.Error(), nil))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("SERVER_ERROR", "operation could not be completed", nil))
	}
}
