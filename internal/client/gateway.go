package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"

	"tableserve/internal/pricing"
)

// Submission carries the order context for a submit call. For updates,
// ExistingOrderID and PreviousOrder identify the order being edited;
// for new orders, QuickResponseID identifies the table QR code.
type Submission struct {
	IsUpdate        bool
	ExistingOrderID string
	QuickResponseID string
	PreviousOrder   *OrderRecord
}

// Outcome distinguishes what Submit actually did, so callers can show a
// different message for a skipped no-op update.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeUnchanged
)

// placePayload is the wire shape for both placement and update.
type placePayload struct {
	Status              int             `json:"status"`
	PlacedByName        string          `json:"placedByName"`
	PlacedByPhoneNumber string          `json:"placedByPhoneNumber"`
	QuickResponseID     string          `json:"quickResponseID"`
	Comment             string          `json:"comment"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	OrderDetails        []detailPayload `json:"orderDetails"`
}

type detailPayload struct {
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsVariety bool            `json:"isVariety"`
	IsPacked  bool            `json:"isPacked"`
}

// Gateway converts a priced cart plus serving info into a backend
// order, handling first-time placement and subsequent edits.
type Gateway struct {
	c *Client
}

func NewGateway(c *Client) *Gateway { return &Gateway{c: c} }

// Submit validates serving info, prices the cart and places or updates
// the order. Updates whose cart is element-wise identical to the
// previously loaded order skip the network entirely and return
// OutcomeUnchanged with the prior record. No retries are attempted;
// every retry is caller-initiated.
func (g *Gateway) Submit(ctx context.Context, lines []pricing.CartLine, serving ServingInfo, sub Submission) (*OrderRecord, Outcome, error) {
	if err := validateServing(serving); err != nil {
		return nil, 0, err
	}

	if sub.IsUpdate && sub.PreviousOrder != nil && cartMatchesOrder(lines, sub.PreviousOrder.OrderDetails) {
		return sub.PreviousOrder, OutcomeUnchanged, nil
	}

	payload := placePayload{
		Status:              0,
		PlacedByName:        serving.Name,
		PlacedByPhoneNumber: serving.PhoneNumber,
		QuickResponseID:     sub.QuickResponseID,
		Comment:             serving.Comment,
		TotalAmount:         pricing.Price(lines).Total,
		OrderDetails:        make([]detailPayload, 0, len(lines)),
	}
	for _, l := range lines {
		payload.OrderDetails = append(payload.OrderDetails, detailPayload{
			ItemID:    l.ID,
			Quantity:  l.Count,
			UnitPrice: l.Price,
			IsVariety: l.IsVariety,
			IsPacked:  l.IsPacked,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	var req *http.Request
	outcome := OutcomeCreated
	if sub.IsUpdate {
		if sub.ExistingOrderID == "" {
			return nil, 0, &ValidationError{Fields: map[string]string{"orderId": "missing order id for update"}}
		}
		outcome = OutcomeUpdated
		q := url.Values{}
		q.Set("orderId", sub.ExistingOrderID)
		req, err = http.NewRequestWithContext(ctx, http.MethodPut, g.c.BaseURL+"/Order?"+q.Encode(), bytes.NewReader(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, g.c.BaseURL+"/Order/place", bytes.NewReader(body))
	}
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if !sub.IsUpdate {
		if g.c.BusinessID != "" {
			req.Header.Set("BusinessId", g.c.BusinessID)
		}
		if g.c.CooperateID != "" {
			req.Header.Set("CooperateId", g.c.CooperateID)
		}
	}

	var env struct {
		IsSuccessful bool         `json:"isSuccessful"`
		Data         *OrderRecord `json:"data"`
		Error        *apiError    `json:"error,omitempty"`
	}
	if err := g.c.do(req, &env); err != nil {
		return nil, 0, err
	}
	if !env.IsSuccessful || env.Data == nil {
		return nil, 0, submissionError(env.Error)
	}

	rec := env.Data
	if rec.Reference == "" && len(rec.OrderDetails) > 0 && rec.OrderDetails[0].OrderID != "" {
		rec.Reference = rec.OrderDetails[0].OrderID
	}
	return rec, outcome, nil
}

// validateServing runs the client-side field checks: name required,
// phone optional but digits-only with at most 11 of them.
func validateServing(serving ServingInfo) error {
	fields := make(map[string]string)
	if serving.Name == "" {
		fields["placedByName"] = "name is required"
	}
	if serving.PhoneNumber != "" {
		if len(serving.PhoneNumber) > 11 {
			fields["placedByPhoneNumber"] = "phone number must be at most 11 digits"
		} else {
			for _, r := range serving.PhoneNumber {
				if r < '0' || r > '9' {
					fields["placedByPhoneNumber"] = "phone number must contain only digits"
					break
				}
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type cartTriple struct {
	id     string
	count  int
	packed bool
}

// cartMatchesOrder reports whether the cart and the order's confirmed
// details describe the same set of {id, count, isPacked} triples,
// independent of ordering on either side.
func cartMatchesOrder(lines []pricing.CartLine, details []OrderDetail) bool {
	if len(lines) != len(details) {
		return false
	}
	a := make([]cartTriple, 0, len(lines))
	for _, l := range lines {
		a = append(a, cartTriple{id: l.ID, count: l.Count, packed: l.IsPacked})
	}
	b := make([]cartTriple, 0, len(details))
	for _, dt := range details {
		b = append(b, cartTriple{id: dt.ItemID, count: dt.Quantity, packed: dt.IsPacked})
	}
	less := func(s []cartTriple) func(i, j int) bool {
		return func(i, j int) bool { return s[i].id < s[j].id }
	}
	sort.Slice(a, less(a))
	sort.Slice(b, less(b))
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
