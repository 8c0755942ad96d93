// Package menu provides the repository interface and PostgreSQL
// implementation for menu categories and items.
package menu

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("menu not found")
)

type ItemsQuery struct {
	MenuID   string
	Page     int
	PageSize int
}

type Repository interface {
	ListCategories(ctx context.Context, businessID, cooperateID string) ([]Category, error)
	ListItems(ctx context.Context, q ItemsQuery) (*ItemsPage, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListCategories(ctx context.Context, businessID, cooperateID string) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, business_id, cooperate_id, name, is_vat_enabled, vat_rate::text, created_at, updated_at
		FROM menu_categories
		WHERE business_id = $1 AND ($2 = '' OR cooperate_id = $2)
		ORDER BY name
	`, businessID, cooperateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.BusinessID, &cat.CooperateID, &cat.Name,
			&cat.VATEnabled, &cat.VATRate, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListItems(ctx context.Context, q ItemsQuery) (*ItemsPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	rows, err := r.db.Query(ctx, `
		SELECT id, menu_id, name, description, price::text, packing_cost::text, is_variety, created_at, updated_at
		FROM menu_items
		WHERE menu_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, q.MenuID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &ItemsPage{Page: page, PageSize: pageSize}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.MenuID, &it.Name, &it.Description,
			&it.Price, &it.PackingCost, &it.IsVariety, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, it)
	}
	return out, rows.Err()
}
