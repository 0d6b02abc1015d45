package models

// ProductImage is one image attached to a product.
type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
	Primary bool   `json:"primary"`
}

// Product mirrors the backend's product shape. Prices are integer cents.
type Product struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	UnitPriceCents    int64          `json:"unit_price_cents"`
	UnitDiscountCents int64          `json:"unit_discount_cents"`
	TaxPercent        int            `json:"tax_percent"`
	Images            []ProductImage `json:"images"`
	Active            bool           `json:"active"`
}

// ProductQuery carries the listing filters passed through to the backend.
type ProductQuery struct {
	Page       int
	PageSize   int
	Category   string
	Type       string
	ActiveOnly bool
}

// ProductPage is one page of the backend product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
