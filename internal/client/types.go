package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the server-side order as known to the client after
// placement. Every successful response replaces the previous record
// wholesale; fields are never merged individually.
type OrderRecord struct {
	ID                      string          `json:"id"`
	Reference               string          `json:"reference"`
	Status                  int             `json:"status"`
	OrderDetails            []OrderDetail   `json:"orderDetails"`
	TotalAmount             decimal.Decimal `json:"totalAmount"`
	PlacedByName            string          `json:"placedByName"`
	PlacedByPhoneNumber     string          `json:"placedByPhoneNumber"`
	Comment                 string          `json:"comment"`
	QuickResponseID         string          `json:"quickResponseID,omitempty"`
	EstimatedCompletionTime *time.Time      `json:"estimatedCompletionTime,omitempty"`
}

// OrderDetail is a confirmed line item on a placed order.
type OrderDetail struct {
	OrderID   string          `json:"orderID,omitempty"`
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsVariety bool            `json:"isVariety"`
	IsPacked  bool            `json:"isPacked"`
}

// ServingInfo is the customer-entered metadata captured at checkout.
// Callers keep it around to prefill subsequent edits of the same order.
type ServingInfo struct {
	Name        string `json:"placedByName"`
	PhoneNumber string `json:"placedByPhoneNumber"`
	Comment     string `json:"comment"`
}

// Category is a menu category; its VAT policy is inherited by every
// item listed under it.
type Category struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	VATEnabled bool            `json:"isVatEnabled"`
	VATRate    decimal.Decimal `json:"vatRate"`
}

// MenuItem is one orderable item as served by the menu endpoints.
type MenuItem struct {
	ID          string          `json:"id"`
	MenuID      string          `json:"menuId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PackingCost decimal.Decimal `json:"packingCost"`
	IsVariety   bool            `json:"isVariety"`
}

// MenuItemsPage is the paginated items response.
type MenuItemsPage struct {
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Items    []MenuItem `json:"items"`
}
