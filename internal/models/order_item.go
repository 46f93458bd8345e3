package models

import "encoding/json"

// OrderItem is one (sweet, quantity, price snapshot) line within an order.
// Price is captured at order time and never tracks later sweet price edits.
type OrderItem struct {
	ID       int64   `json:"id" db:"id"`
	OrderID  int64   `json:"order_id" db:"order_id"`
	SweetID  int64   `json:"sweet_id" db:"sweet_id"`
	Quantity int     `json:"quantity" db:"quantity"`
	Price    float64 `json:"price" db:"price"`

	// Populated on read paths; nil when the sweet was deleted after ordering.
	Sweet *Sweet `json:"sweet,omitempty"`
}

// Subtotal is quantity times the captured unit price.
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

func (i *OrderItem) MarshalJSON() ([]byte, error) {
	type alias OrderItem
	return json.Marshal(struct {
		*alias
		Subtotal float64 `json:"subtotal"`
	}{(*alias)(i), i.Subtotal()})
}
