package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

type MySQLAddressRepo struct{ db *sql.DB }

func NewMySQLAddressRepo(db *sql.DB) *MySQLAddressRepo { return &MySQLAddressRepo{db: db} }

const addressSelect = `
SELECT address_id, customer_id, kind, street, exterior_no, interior_no, neighborhood,
       city, state, postal_code, country, references_text
FROM addresses`

func scanAddress(row interface{ Scan(...any) error }) (*usecase.AddressRecord, error) {
	var a usecase.AddressRecord
	var extNo, intNo, hood, refs sql.NullString
	if err := row.Scan(&a.ID, &a.CustomerID, &a.Kind, &a.Street, &extNo, &intNo, &hood,
		&a.City, &a.State, &a.PostalCode, &a.Country, &refs); err != nil {
		return nil, err
	}
	a.ExteriorNo = extNo.String
	a.InteriorNo = intNo.String
	a.Neighborhood = hood.String
	a.References = refs.String
	return &a, nil
}

func (r *MySQLAddressRepo) ListByCustomer(ctx context.Context, customerID int64) ([]usecase.AddressRecord, error) {
	rows, err := r.db.QueryContext(ctx, addressSelect+` WHERE customer_id = ?`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := []usecase.AddressRecord{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *MySQLAddressRepo) Create(ctx context.Context, a *usecase.AddressRecord) (*usecase.AddressRecord, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO addresses (customer_id, kind, street, exterior_no, interior_no, neighborhood,
                       city, state, postal_code, country, references_text)
VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.CustomerID, a.Kind, a.Street, a.ExteriorNo, a.InteriorNo, a.Neighborhood,
		a.City, a.State, a.PostalCode, a.Country, a.References,
	)
	if err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, addressSelect+` WHERE address_id = ?`, id)
	out, err := scanAddress(row)
	if err != nil {
		return nil, fmt.Errorf("reload address: %w", err)
	}
	return out, nil
}

// Update writes all address fields. Zero affected rows is not proof of
// a missing row (the mysql driver counts changed rows, and an identical
// resubmission changes nothing), so existence gets its own query.
func (r *MySQLAddressRepo) Update(ctx context.Context, a *usecase.AddressRecord) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE addresses SET
  street = ?, exterior_no = ?, interior_no = ?, neighborhood = ?,
  city = ?, state = ?, postal_code = ?, country = ?, references_text = ?, kind = ?
WHERE address_id = ?`,
		a.Street, a.ExteriorNo, a.InteriorNo, a.Neighborhood,
		a.City, a.State, a.PostalCode, a.Country, a.References, a.Kind,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var id int64
		err := r.db.QueryRowContext(ctx, `SELECT address_id FROM addresses WHERE address_id = ?`, a.ID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("address %d: %w", a.ID, usecase.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check address: %w", err)
		}
	}
	return nil
}

func (r *MySQLAddressRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE address_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("address %d: %w", id, usecase.ErrNotFound)
	}
	return nil
}

var _ usecase.AddressRepo = (*MySQLAddressRepo)(nil)
