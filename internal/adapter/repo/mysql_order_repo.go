package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create inserts the order, its line items, and the pending payment
// record in one transaction. Either all three are visible or none.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *usecase.NewOrder) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (customer_id, shipping_address_id, payment_method_id, shipping_method_id,
                    status_id, subtotal, tax, total, tracking_code, notes, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,NOW())`,
		o.CustomerID, o.ShippingAddressID, o.PaymentMethodID, o.ShippingMethodID,
		o.StatusID, o.Subtotal, o.Tax, o.Total, o.TrackingCode, o.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
VALUES (?,?,?,?,?)`,
			orderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO payments (order_id, payment_method_id, amount, status, created_at)
VALUES (?,?,?,?,NOW())`,
		orderID, o.PaymentMethodID, o.Total, domain.PaymentPending,
	); err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return orderID, nil
}

const orderSelect = `
SELECT o.order_id, o.customer_id, o.shipping_address_id, o.payment_method_id, o.shipping_method_id,
       o.status_id, o.subtotal, o.tax, o.total, o.tracking_code, o.notes, o.created_at,
       s.name, pm.name, sm.name, sm.cost
FROM orders o
LEFT JOIN order_statuses s ON o.status_id = s.status_id
LEFT JOIN payment_methods pm ON o.payment_method_id = pm.payment_method_id
LEFT JOIN shipping_methods sm ON o.shipping_method_id = sm.shipping_method_id`

func scanOrder(row interface{ Scan(...any) error }) (*usecase.OrderRecord, error) {
	var rec usecase.OrderRecord
	var notes sql.NullString
	var statusName, pmName, smName sql.NullString
	var smCost sql.NullFloat64
	if err := row.Scan(
		&rec.ID, &rec.CustomerID, &rec.ShippingAddressID, &rec.PaymentMethodID, &rec.ShippingMethodID,
		&rec.StatusID, &rec.Subtotal, &rec.Tax, &rec.Total, &rec.TrackingCode, &notes, &rec.CreatedAt,
		&statusName, &pmName, &smName, &smCost,
	); err != nil {
		return nil, err
	}
	rec.Notes = notes.String
	rec.StatusName = statusName.String
	rec.PaymentMethodName = pmName.String
	rec.ShippingMethodName = smName.String
	rec.ShippingCost = smCost.Float64
	return &rec, nil
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id int64) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, orderSelect+` WHERE o.order_id = ?`, id)
	rec, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if rec.Address, err = r.addressOf(ctx, rec.ShippingAddressID); err != nil {
		return nil, err
	}
	if rec.Items, err = r.itemsOf(ctx, rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByCustomer returns the customer's orders, newest first, each with
// its resolved line items. One items query per order; the volume here
// stays small enough that batching is not worth the query complexity.
func (r *MySQLOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]usecase.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, orderSelect+` WHERE o.customer_id = ? ORDER BY o.created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []usecase.OrderRecord{}
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Items, err = r.itemsOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MySQLOrderRepo) itemsOf(ctx context.Context, orderID int64) ([]usecase.OrderItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT i.order_item_id, i.order_id, i.product_id, i.quantity, i.unit_price, i.subtotal,
       p.name, p.image_url
FROM order_items i
LEFT JOIN products p ON i.product_id = p.product_id
WHERE i.order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	var items []usecase.OrderItemRecord
	for rows.Next() {
		var it usecase.OrderItemRecord
		var name, img sql.NullString
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal, &name, &img); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.ProductName = name.String
		it.ImageURL = img.String
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *MySQLOrderRepo) addressOf(ctx context.Context, addressID int64) (*usecase.AddressRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT address_id, customer_id, kind, street, exterior_no, interior_no, neighborhood,
       city, state, postal_code, country, references_text
FROM addresses WHERE address_id = ?`, addressID)
	var a usecase.AddressRecord
	var intNo, refs sql.NullString
	err := row.Scan(&a.ID, &a.CustomerID, &a.Kind, &a.Street, &a.ExteriorNo, &intNo,
		&a.Neighborhood, &a.City, &a.State, &a.PostalCode, &a.Country, &refs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // address deleted after the order; order still readable
	}
	if err != nil {
		return nil, fmt.Errorf("order address: %w", err)
	}
	a.InteriorNo = intNo.String
	a.References = refs.String
	return &a, nil
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id int64, statusID int) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status_id = ?, updated_at = NOW()
        WHERE order_id = ?`,
		statusID, id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("order %d: %w", id, usecase.ErrNotFound)
	}
	return nil
}

// UpdateStatusIf applies the transition only when the current status
// matches. rows == 0 means nothing matched (missing order or status
// mismatch), reported as non-application.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id int64, from, to int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status_id = ?, updated_at = NOW()
        WHERE order_id = ? AND status_id = ?`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("guarded update status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
