package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

// CreateAccount inserts the user row and its customer profile together.
// A duplicate email is a validation error, detected before the insert.
func (r *MySQLCustomerRepo) CreateAccount(ctx context.Context, acc *usecase.NewAccount) (*usecase.UserRecord, error) {
	var exists int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM users WHERE email = ?`, acc.Email).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", usecase.ErrValidation)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
INSERT INTO users (email, password_hash, user_type, active) VALUES (?,?, 'cliente', 1)`,
		acc.Email, acc.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	res, err = tx.ExecContext(ctx, `
INSERT INTO customers (user_id, first_name, last_name, phone) VALUES (?,?,?,?)`,
		userID, acc.FirstName, acc.LastName, acc.Phone,
	)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	customerID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &usecase.UserRecord{
		UserID:     userID,
		Email:      acc.Email,
		UserType:   "cliente",
		CustomerID: customerID,
		FirstName:  acc.FirstName,
		LastName:   acc.LastName,
		Phone:      acc.Phone,
	}, nil
}

const userSelect = `
SELECT u.user_id, u.email, u.password_hash, u.user_type,
       c.customer_id, c.first_name, c.last_name, c.phone
FROM users u
LEFT JOIN customers c ON u.user_id = c.user_id`

func scanUser(row *sql.Row) (*usecase.UserRecord, error) {
	var rec usecase.UserRecord
	var custID sql.NullInt64
	var first, last, phone sql.NullString
	if err := row.Scan(&rec.UserID, &rec.Email, &rec.PasswordHash, &rec.UserType,
		&custID, &first, &last, &phone); err != nil {
		return nil, err
	}
	rec.CustomerID = custID.Int64
	rec.FirstName = first.String
	rec.LastName = last.String
	rec.Phone = phone.String
	return &rec, nil
}

func (r *MySQLCustomerRepo) FindUserByEmail(ctx context.Context, email string) (*usecase.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE u.email = ? AND u.active = 1`, email)
	rec, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec, nil
}

// UpdateCustomer writes the profile fields and reloads the merged user
// record. Existence is decided by the reload, not RowsAffected: the
// mysql driver reports changed rows by default, so resubmitting the
// same values affects zero rows on a row that is perfectly there.
func (r *MySQLCustomerRepo) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone string) (*usecase.UserRecord, error) {
	_, err := r.db.ExecContext(ctx, `
UPDATE customers SET first_name = ?, last_name = ?, phone = ? WHERE customer_id = ?`,
		firstName, lastName, phone, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	row := r.db.QueryRowContext(ctx, userSelect+` WHERE c.customer_id = ?`, customerID)
	rec, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", customerID, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return rec, nil
}

func (r *MySQLCustomerRepo) PasswordHashByUserID(ctx context.Context, userID int64) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE user_id = ?`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("user %d: %w", userID, usecase.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

func (r *MySQLCustomerRepo) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE user_id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Zero changed rows also happens when the stored hash already
		// equals the new one; confirm the user is actually missing.
		var id int64
		err := r.db.QueryRowContext(ctx, `SELECT user_id FROM users WHERE user_id = ?`, userID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %d: %w", userID, usecase.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
	}
	return nil
}

func (r *MySQLCustomerRepo) EmailByCustomerID(ctx context.Context, customerID int64) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx, `
SELECT u.email FROM customers c JOIN users u ON c.user_id = u.user_id WHERE c.customer_id = ?`,
		customerID).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("customer %d: %w", customerID, usecase.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("customer email: %w", err)
	}
	return email, nil
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
