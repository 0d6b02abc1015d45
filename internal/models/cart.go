package models

// CartItem is one product's line in the cart. Name, price, discount and
// stock are snapshotted when the product is first added and never
// re-fetched; the backend re-validates everything at order time.
type CartItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	UnitPriceCents    int64  `json:"unit_price_cents"`
	UnitDiscountCents int64  `json:"unit_discount_cents"`
	Quantity          int    `json:"quantity"`
	AvailableStock    int    `json:"available_stock"`
}

// LineTotalCents is (unit price - unit discount) * quantity.
func (i CartItem) LineTotalCents() int64 {
	return (i.UnitPriceCents - i.UnitDiscountCents) * int64(i.Quantity)
}

// AddItemRequest is the product snapshot posted by the storefront UI when
// the shopper hits "add to cart".
type AddItemRequest struct {
	ID                string `json:"id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	UnitPriceCents    int64  `json:"unit_price_cents" binding:"required,gt=0"`
	UnitDiscountCents int64  `json:"unit_discount_cents"`
	AvailableStock    int    `json:"available_stock"`
}

// SetQuantityRequest replaces a line's quantity; zero or below removes it.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSummary is the cart plus its aggregates. The aggregates are pure
// functions of the items and are recomputed on every read.
type CartSummary struct {
	Items              []CartItem `json:"items"`
	TotalCents         int64      `json:"total_cents"`
	DiscountTotalCents int64      `json:"discount_total_cents"`
	ItemCount          int        `json:"item_count"`
	DisplayTotal       string     `json:"display_total"`
}
