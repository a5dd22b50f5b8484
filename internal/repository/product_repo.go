package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// GetProductRules loads categories and delivery overrides for ids. Products
// without any stored rows are simply missing from the result.
func (r *ProductRepo) GetProductRules(ctx context.Context, ids []string) (map[string]models.ProductRules, error) {
	out := make(map[string]models.ProductRules, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	if err := r.loadOverrides(ctx, ids, out); err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, ids, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) loadOverrides(ctx context.Context, ids []string, out map[string]models.ProductRules) error {
	query := `
		SELECT product_id, until_enabled, until_date, delivery_days
		FROM product_delivery_rules
		WHERE product_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("select product rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ProductRules
		if err := rows.Scan(&p.ProductID, &p.UntilEnabled, &p.UntilDate, pq.Array(&p.DeliveryDays)); err != nil {
			return fmt.Errorf("scan product rules: %w", err)
		}
		out[p.ProductID] = p
	}
	return rows.Err()
}

func (r *ProductRepo) loadCategories(ctx context.Context, ids []string, out map[string]models.ProductRules) error {
	query := `
		SELECT product_id, category_id
		FROM product_categories
		WHERE product_id = ANY($1)
		ORDER BY product_id, category_id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("select product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, categoryID string
		if err := rows.Scan(&productID, &categoryID); err != nil {
			return fmt.Errorf("scan product category: %w", err)
		}
		p := out[productID]
		p.ProductID = productID
		p.Categories = append(p.Categories, categoryID)
		out[productID] = p
	}
	return rows.Err()
}

// SaveProductRules upserts the delivery override for one product.
func (r *ProductRepo) SaveProductRules(ctx context.Context, p models.ProductRules) error {
	query := `
		INSERT INTO product_delivery_rules (product_id, until_enabled, until_date, delivery_days, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id) DO UPDATE
		SET until_enabled = EXCLUDED.until_enabled,
		    until_date = EXCLUDED.until_date,
		    delivery_days = EXCLUDED.delivery_days,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, p.ProductID, p.UntilEnabled, p.UntilDate, pq.Array(nonNil(p.DeliveryDays)))
	if err != nil {
		return fmt.Errorf("upsert product rules: %w", err)
	}
	return nil
}
