package menu

import "time"

// Category groups menu items and carries the VAT policy inherited by
// every item under it.
type Category struct {
	ID          string `json:"id"`
	BusinessID  string `json:"-"`
	CooperateID string `json:"-"`
	Name        string `json:"name"`
	VATEnabled  bool   `json:"isVatEnabled"`
	// We store money and rates as strings to avoid rounding errors (NUMERIC in Postgres)
	VATRate   string    `json:"vatRate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is one orderable unit belonging to a category ("menu").
type Item struct {
	ID          string    `json:"id"`
	MenuID      string    `json:"menuId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	PackingCost string    `json:"packingCost"`
	IsVariety   bool      `json:"isVariety"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemsPage is the paginated items response.
type ItemsPage struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Items    []Item `json:"items"`
}
