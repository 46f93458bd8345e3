package models

import (
	"encoding/json"
	"time"
)

type Sweet struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MarshalJSON emits the on-hand quantity under both "quantity" and the
// legacy "stock" key that older clients still read.
func (s *Sweet) MarshalJSON() ([]byte, error) {
	type alias Sweet
	return json.Marshal(struct {
		*alias
		Stock int `json:"stock"`
	}{(*alias)(s), s.Quantity})
}
