package models

// CheckoutForm carries the customer contact and delivery-address fields.
// The json names match the backend order payload so the form embeds
// directly into OrderRequest. No binding:"required" tags here: validation
// collects every problem in one pass instead of failing on the first.
type CheckoutForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	HouseNumber  string `json:"house_no"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	Country      string `json:"country"`
	CustomerNote string `json:"customer_note,omitempty"`
}

// OrderRequest is the order-creation payload posted to the backend:
// the contact/address fields plus product id -> requested quantity.
type OrderRequest struct {
	CheckoutForm
	Products map[string]int `json:"products"`
}

// OrderAck is the backend's acknowledgement of a created order. Only the
// order number is consumed; it keys the confirmation view.
type OrderAck struct {
	OrderNumber string `json:"order_number"`
}

// Confirmation is the storefront's confirmation payload. JustPlaced is
// true exactly once, on the first read after checkout.
type Confirmation struct {
	OrderNumber string `json:"order_number"`
	JustPlaced  bool   `json:"just_placed"`
}
