// Package testfixtures provides documented types used for testing the
// specgen packages.
package testfixtures

import "time"

// Order is a placed order.
type Order struct {
	// ID uniquely identifies the order.
	ID string `json:"id"`

	// Customer is the account that placed the order.
	Customer string `json:"customer"`

	// PlacedAt is the submission timestamp.
	PlacedAt time.Time `json:"placedAt"`

	Lines []OrderLine `json:"lines"`
}

// OrderLine is one line item of an order.
type OrderLine struct {
	// SKU identifies the product.
	SKU string `json:"sku"`

	Quantity int32 `json:"quantity"` // Quantity is the number of units ordered.
}

// Paged wraps a result page of any item type.
type Paged[T any] struct {
	// Items holds the current page.
	Items []T `json:"items"`

	// Total counts all matching items across pages.
	Total int64 `json:"total"`
}
