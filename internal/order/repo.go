package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByReference(ctx context.Context, reference, businessID string) (*Order, error)
	Update(ctx context.Context, o *Order) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, business_id, cooperate_id, reference, status, quick_response_id,
                        placed_by_name, placed_by_phone, comment, total_amount,
                        estimated_completion_time, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
  `, o.ID, o.BusinessID, o.CooperateID, o.Reference, o.Status, o.QuickResponseID,
		o.PlacedByName, o.PlacedByPhone, o.Comment, o.TotalAmount, o.EstimatedCompletionTime); err != nil {
		return err
	}

	if err := insertDetails(ctx, tx, o.ID, o.OrderDetails); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.getOne(ctx, `
    SELECT id, business_id, cooperate_id, reference, status, quick_response_id,
           placed_by_name, placed_by_phone, comment, total_amount::text,
           estimated_completion_time, created_at, updated_at
    FROM orders WHERE id=$1
  `, id)
}

func (r *PGRepo) GetByReference(ctx context.Context, reference, businessID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.getOne(ctx, `
    SELECT id, business_id, cooperate_id, reference, status, quick_response_id,
           placed_by_name, placed_by_phone, comment, total_amount::text,
           estimated_completion_time, created_at, updated_at
    FROM orders WHERE reference=$1 AND business_id=$2
  `, reference, businessID)
}

// Update rewrites the order row and replaces its details wholesale.
func (r *PGRepo) Update(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE orders
    SET status = $2, placed_by_name = $3, placed_by_phone = $4, comment = $5,
        total_amount = $6, updated_at = NOW()
    WHERE id = $1
  `, o.ID, o.Status, o.PlacedByName, o.PlacedByPhone, o.Comment, o.TotalAmount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_details WHERE order_id=$1`, o.ID); err != nil {
		return err
	}
	if err := insertDetails(ctx, tx, o.ID, o.OrderDetails); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (*Order, error) {
	var o Order
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.BusinessID, &o.CooperateID, &o.Reference, &o.Status, &o.QuickResponseID,
		&o.PlacedByName, &o.PlacedByPhone, &o.Comment, &o.TotalAmount,
		&o.EstimatedCompletionTime, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, item_id, quantity, unit_price::text, is_variety, is_packed
    FROM order_details WHERE order_id=$1
  `, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dt Detail
		if err := rows.Scan(&dt.ID, &dt.OrderID, &dt.ItemID, &dt.Quantity, &dt.UnitPrice, &dt.IsVariety, &dt.IsPacked); err != nil {
			return nil, err
		}
		o.OrderDetails = append(o.OrderDetails, dt)
	}
	return &o, rows.Err()
}

func insertDetails(ctx context.Context, tx pgx.Tx, orderID string, details []Detail) error {
	for _, dt := range details {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_details (id, order_id, item_id, quantity, unit_price, is_variety, is_packed)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, dt.ID, orderID, dt.ItemID, dt.Quantity, dt.UnitPrice, dt.IsVariety, dt.IsPacked); err != nil {
			return err
		}
	}
	return nil
}
