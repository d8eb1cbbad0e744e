package models

import "time"

// CartLineItem is one distinct product inside a user's cart. A cart holds at
// most one line item per product id, and a quantity never drops below 1: an
// update that would reach 0 removes the line instead.
type CartLineItem struct {
	ProductID          int       `json:"product_id"`
	Title              string    `json:"title"`
	Thumbnail          string    `json:"thumbnail"`
	Category           string    `json:"category"`
	Brand              string    `json:"brand"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discount_percentage"`
	Quantity           int       `json:"quantity"`
	AddedAt            time.Time `json:"added_at"`
}

// CartTotals is derived from the line items and never authoritative on its
// own. It is recomputed after every mutation and after every restore from
// storage; it is never persisted.
type CartTotals struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// Cart is the in-memory view handed to the presentation layer.
type Cart struct {
	Items  []CartLineItem `json:"items"`
	Totals CartTotals     `json:"totals"`
}

// CartSchemaVersion tags persisted cart documents. A document carrying an
// unknown version is discarded at restore time rather than half-parsed.
const CartSchemaVersion = 1

// CartDocument is the persisted shape of a cart: line items only.
type CartDocument struct {
	SchemaVersion int            `json:"schema_version"`
	Items         []CartLineItem `json:"items"`
}
