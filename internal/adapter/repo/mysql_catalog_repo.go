package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

// ListProducts returns active products, optionally filtered by a
// category and its subtree (two levels down, as the storefront nests).
func (r *MySQLCatalogRepo) ListProducts(ctx context.Context, categoryID int64) ([]usecase.ProductRecord, error) {
	q := `
SELECT p.product_id, p.category_id, COALESCE(c.name, ''), p.name, p.description, p.price, p.image_url
FROM products p
LEFT JOIN categories c ON p.category_id = c.category_id
WHERE p.active = 1`
	args := []any{}
	if categoryID != 0 {
		q += `
  AND p.category_id IN (
    SELECT c1.category_id FROM categories c1 WHERE c1.category_id = ?
    UNION
    SELECT c2.category_id FROM categories c2 WHERE c2.parent_id = ?
    UNION
    SELECT c3.category_id FROM categories c3
      INNER JOIN categories c2 ON c3.parent_id = c2.category_id
      WHERE c2.parent_id = ?
  )`
		args = append(args, categoryID, categoryID, categoryID)
	}
	q += ` LIMIT 50`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []usecase.ProductRecord{}
	for rows.Next() {
		var p usecase.ProductRecord
		var desc, img sql.NullString
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &desc, &p.Price, &img); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Description = desc.String
		p.ImageURL = img.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProduct returns one product with its approved reviews.
func (r *MySQLCatalogRepo) GetProduct(ctx context.Context, id int64) (*usecase.ProductRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT product_id, category_id, name, description, price, image_url
FROM products WHERE product_id = ? AND active = 1`, id)
	var p usecase.ProductRecord
	var desc, img sql.NullString
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &desc, &p.Price, &img)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.Description = desc.String
	p.ImageURL = img.String

	rows, err := r.db.QueryContext(ctx, `
SELECT r.review_id, r.product_id, r.customer_id, r.order_id, r.rating, r.comment, c.first_name, r.created_at
FROM reviews r
JOIN customers c ON r.customer_id = c.customer_id
WHERE r.product_id = ? AND r.approved = 1 AND r.active = 1
ORDER BY r.created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("product reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv usecase.ReviewRecord
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.OrderID, &rv.Rating, &comment, &rv.CustomerName, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Comment = comment.String
		p.Reviews = append(p.Reviews, rv)
	}
	return &p, rows.Err()
}

func (r *MySQLCatalogRepo) ListCategories(ctx context.Context) ([]usecase.CategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, parent_id, name FROM categories WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []usecase.CategoryRecord{}
	for rows.Next() {
		var c usecase.CategoryRecord
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &parent, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parent.Valid {
			c.ParentID = &parent.Int64
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MySQLCatalogRepo) ListShippingMethods(ctx context.Context) ([]usecase.MethodRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT shipping_method_id, name, cost FROM shipping_methods WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("list shipping methods: %w", err)
	}
	defer rows.Close()

	out := []usecase.MethodRecord{}
	for rows.Next() {
		var m usecase.MethodRecord
		if err := rows.Scan(&m.ID, &m.Name, &m.Cost); err != nil {
			return nil, fmt.Errorf("scan shipping method: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MySQLCatalogRepo) ListPaymentMethods(ctx context.Context) ([]usecase.MethodRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payment_method_id, name FROM payment_methods WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	out := []usecase.MethodRecord{}
	for rows.Next() {
		var m usecase.MethodRecord
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateReview stores an auto-approved review.
func (r *MySQLCatalogRepo) CreateReview(ctx context.Context, rv *usecase.ReviewRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (product_id, customer_id, order_id, rating, comment, approved, active, created_at)
VALUES (?,?,?,?,?,1,1,NOW())`,
		rv.ProductID, rv.CustomerID, rv.OrderID, rv.Rating, rv.Comment,
	)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return res.LastInsertId()
}

var _ usecase.CatalogRepo = (*MySQLCatalogRepo)(nil)
