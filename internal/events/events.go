package events

import "time"

type OrderPlaced struct {
	OrderID     string    `json:"order_id"`
	Reference   string    `json:"reference"`
	BusinessID  string    `json:"business_id"`
	TotalAmount string    `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	Reference string    `json:"reference"`
	OldStatus int       `json:"old_status"`
	NewStatus int       `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}
