package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

type MySQLPaymentRepo struct{ db *sql.DB }

func NewMySQLPaymentRepo(db *sql.DB) *MySQLPaymentRepo { return &MySQLPaymentRepo{db: db} }

// Settle moves the order's payment from pending to completed, recording
// the provider transaction id and the raw event payload for audit. The
// WHERE clause makes the update conditional: a second delivery matches
// zero rows and reports non-application.
func (r *MySQLPaymentRepo) Settle(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE payments
        SET status = ?, transaction_id = ?, raw_payload = ?, completed_at = NOW()
        WHERE order_id = ? AND status = ?`,
		domain.PaymentCompleted, transactionID, rawPayload, orderID, domain.PaymentPending,
	)
	if err != nil {
		return false, fmt.Errorf("settle payment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLPaymentRepo) GetByOrder(ctx context.Context, orderID int64) (*usecase.PaymentRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT payment_id, order_id, payment_method_id, amount, status, transaction_id, raw_payload, created_at
FROM payments WHERE order_id = ?`, orderID)
	var rec usecase.PaymentRecord
	var txID sql.NullString
	var raw []byte
	err := row.Scan(&rec.ID, &rec.OrderID, &rec.PaymentMethodID, &rec.Amount, &rec.Status, &txID, &raw, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment for order %d: %w", orderID, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	rec.TransactionID = txID.String
	rec.RawPayload = raw
	return &rec, nil
}

var _ usecase.PaymentRepo = (*MySQLPaymentRepo)(nil)
