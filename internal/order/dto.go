package order

import "github.com/shopspring/decimal"

// PlaceOrderRequest is the payload for both placement and update.
type PlaceOrderRequest struct {
	Status          int             `json:"status"`
	PlacedByName    string          `json:"placedByName" binding:"required"`
	PlacedByPhone   string          `json:"placedByPhoneNumber" binding:"omitempty,numeric,max=11"`
	QuickResponseID string          `json:"quickResponseID"`
	Comment         string          `json:"comment"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderDetails    []DetailRequest `json:"orderDetails" binding:"required,min=1,dive"`
}

// DetailRequest is one line item of the placement payload.
type DetailRequest struct {
	ItemID    string          `json:"itemId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsVariety bool            `json:"isVariety"`
	IsPacked  bool            `json:"isPacked"`
}
