// Package inventory governs sweet quantity-on-hand mutations. Both
// operations mutate the passed sweet in memory only; durability is deferred
// to the transaction enclosing the call.
package inventory

import (
	"fmt"
	"math"

	"sweetshop/internal/common"
	"sweetshop/internal/models"
)

// Reserve decrements the sweet's on-hand quantity for an order line.
// The quantity never goes negative: a request beyond the current stock
// fails with common.ErrInsufficientStock and leaves the sweet untouched.
func Reserve(sweet *models.Sweet, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: reservation quantity must be positive", common.ErrValidation)
	}
	if sweet.Quantity < qty {
		return fmt.Errorf("%w for %s", common.ErrInsufficientStock, sweet.Name)
	}
	sweet.Quantity -= qty
	return nil
}

// Release returns stock to the sweet when an order is deleted. There is no
// upper-bound business rule, only an integer overflow guard.
func Release(sweet *models.Sweet, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: release quantity must be positive", common.ErrValidation)
	}
	if sweet.Quantity > math.MaxInt-qty {
		return fmt.Errorf("%w: quantity overflow on restock", common.ErrValidation)
	}
	sweet.Quantity += qty
	return nil
}
