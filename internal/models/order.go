package models

import (
	"encoding/json"
	"time"
)

// Order is the transaction header. It exclusively owns its line items:
// deleting an order removes them (see the order service delete transaction
// and the ON DELETE CASCADE in the schema).
type Order struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`

	// Populated on read paths, never scanned from the orders table.
	Customer *Customer    `json:"customer,omitempty"`
	Items    []*OrderItem `json:"items"`
}

// DefaultStatus is applied when the caller supplies none. Status is
// otherwise a free-form string: any value may replace any other.
const DefaultStatus = "pending"

// MarshalJSON emits the total under both "total_amount" and the legacy
// "total_price" key.
func (o *Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		*alias
		TotalPrice float64 `json:"total_price"`
	}{(*alias)(o), o.TotalAmount})
}
