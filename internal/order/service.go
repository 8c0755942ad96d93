package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tableserve/internal/events"
)

var (
	ErrDuplicate         = errors.New("duplicate order placement")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Publisher is satisfied by events.Producer.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service owns order lifecycle rules: reference generation, completion
// estimates, status transitions, idempotent placement and event
// publication. Events and idempotency are optional collaborators; a
// nil Publisher or IdempotencyStore disables that concern.
type Service struct {
	repo     Repository
	producer Publisher
	idem     IdempotencyStore
	prepTime time.Duration
	log      zerolog.Logger
}

func NewService(repo Repository, producer Publisher, idem IdempotencyStore, prepTime time.Duration, log zerolog.Logger) *Service {
	return &Service{repo: repo, producer: producer, idem: idem, prepTime: prepTime, log: log}
}

// Place creates a fresh order in StatusAwaitingConfirmation with a
// shareable reference and an estimated completion time of now + prep
// time. A reused idempotency key returns ErrDuplicate without writing.
func (s *Service) Place(ctx context.Context, businessID, cooperateID, idemKey string, req PlaceOrderRequest) (*Order, error) {
	if idemKey != "" && s.idem != nil {
		fresh, err := s.idem.Reserve(ctx, idemKey)
		if err != nil {
			return nil, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !fresh {
			return nil, ErrDuplicate
		}
	}

	est := time.Now().UTC().Add(s.prepTime)
	o := &Order{
		ID:                      uuid.NewString(),
		BusinessID:              businessID,
		CooperateID:             cooperateID,
		Reference:               newReference(),
		Status:                  StatusAwaitingConfirmation,
		QuickResponseID:         req.QuickResponseID,
		PlacedByName:            req.PlacedByName,
		PlacedByPhone:           req.PlacedByPhone,
		Comment:                 req.Comment,
		TotalAmount:             req.TotalAmount.StringFixed(2),
		EstimatedCompletionTime: &est,
		OrderDetails:            toDetails(req.OrderDetails),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.publish(ctx, o.ID, events.OrderPlaced{
		OrderID:     o.ID,
		Reference:   o.Reference,
		BusinessID:  o.BusinessID,
		TotalAmount: o.TotalAmount,
		Timestamp:   time.Now().UTC(),
	})
	return s.repo.GetByID(ctx, o.ID)
}

// Update replaces the order's customer-editable fields and details.
// The payload's status is applied only through a valid transition;
// anything else is rejected.
func (s *Service) Update(ctx context.Context, orderID string, req PlaceOrderRequest) (*Order, error) {
	existing, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	newStatus := existing.Status
	if req.Status != existing.Status {
		if !validTransition(existing.Status, req.Status) {
			return nil, ErrInvalidTransition
		}
		newStatus = req.Status
	}

	updated := *existing
	updated.Status = newStatus
	updated.PlacedByName = req.PlacedByName
	updated.PlacedByPhone = req.PlacedByPhone
	updated.Comment = req.Comment
	updated.TotalAmount = req.TotalAmount.StringFixed(2)
	updated.OrderDetails = toDetails(req.OrderDetails)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if newStatus != existing.Status {
		s.publish(ctx, updated.ID, events.OrderStatusChanged{
			OrderID:   updated.ID,
			Reference: updated.Reference,
			OldStatus: existing.Status,
			NewStatus: newStatus,
			Timestamp: time.Now().UTC(),
		})
	}
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) GetByReference(ctx context.Context, reference, businessID string) (*Order, error) {
	return s.repo.GetByReference(ctx, reference, businessID)
}

func (s *Service) publish(ctx context.Context, key string, event any) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.log.Error().Err(err).Str("order_id", key).Msg("failed to publish order event")
	}
}

// newReference builds the human-shareable tracking code.
func newReference() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func toDetails(reqs []DetailRequest) []Detail {
	out := make([]Detail, 0, len(reqs))
	for _, d := range reqs {
		out = append(out, Detail{
			ID:        uuid.NewString(),
			ItemID:    d.ItemID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice.StringFixed(2),
			IsVariety: d.IsVariety,
			IsPacked:  d.IsPacked,
		})
	}
	return out
}
