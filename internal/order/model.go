package order

import "time"

// Status codes stored on an order. Fresh orders start at
// StatusAwaitingConfirmation and move to StatusOpen once the kitchen
// confirms; the customer client projects these integers onto its
// display timelines.
const (
	StatusOpen                 = 0
	StatusClosed               = 1
	StatusCancelled            = 2
	StatusAwaitingConfirmation = 3
)

type Order struct {
	ID              string `json:"id"`
	BusinessID      string `json:"-"`
	CooperateID     string `json:"-"`
	Reference       string `json:"reference"`
	Status          int    `json:"status"`
	QuickResponseID string `json:"quickResponseID"`
	PlacedByName    string `json:"placedByName"`
	PlacedByPhone   string `json:"placedByPhoneNumber"`
	Comment         string `json:"comment"`
	// NUMERIC -> string
	TotalAmount             string     `json:"totalAmount"`
	OrderDetails            []Detail   `json:"orderDetails"`
	EstimatedCompletionTime *time.Time `json:"estimatedCompletionTime,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

type Detail struct {
	ID        string `json:"-"`
	OrderID   string `json:"orderID"`
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	IsVariety bool   `json:"isVariety"`
	IsPacked  bool   `json:"isPacked"`
}

// validTransition limits how an order may move between statuses on
// update: confirm, close or cancel. Same-status writes are allowed.
func validTransition(from, to int) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusAwaitingConfirmation:
		return to == StatusOpen || to == StatusCancelled
	case StatusOpen:
		return to == StatusClosed || to == StatusCancelled
	default:
		return false
	}
}
