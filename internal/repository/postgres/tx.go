package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

// txStore implements port.Tx on top of a single sqlx transaction. It is
// handed to engine callbacks by the unit of work and never outlives the
// transaction.
type txStore struct {
	tx *sqlx.Tx
}

// GetProductForUpdate reads the product row under FOR UPDATE. The lock is
// held until the enclosing transaction commits or rolls back.
func (t *txStore) GetProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := t.tx.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("txStore.GetProductForUpdate: %w", err)
	}
	return &p, nil
}

func (t *txStore) SetProductStock(ctx context.Context, id int64, size decimal.Decimal) error {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE products SET size = $1, updated_at = now() WHERE id = $2", size, id)
	if err != nil {
		return fmt.Errorf("txStore.SetProductStock: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// NextBillNumber increments and returns the sale bill counter. The counter
// row is locked by the UPDATE for the rest of the transaction, so two
// concurrent sales cannot draw the same number.
func (t *txStore) NextBillNumber(ctx context.Context) (int64, error) {
	var seq int64
	err := t.tx.GetContext(ctx, &seq,
		"UPDATE bill_sequences SET value = value + 1 WHERE name = 'sale_bill' RETURNING value")
	if err != nil {
		return 0, fmt.Errorf("txStore.NextBillNumber: %w", err)
	}
	return seq, nil
}

// EnsureBillSequence raises the sale bill counter to at least min. Used
// after a duplicate bill number rolled back the drawing transaction, so
// the next draw starts beyond the colliding value.
func (t *txStore) EnsureBillSequence(ctx context.Context, min int64) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE bill_sequences SET value = GREATEST(value, $1) WHERE name = 'sale_bill'", min)
	if err != nil {
		return fmt.Errorf("txStore.EnsureBillSequence: %w", err)
	}
	return nil
}

func (t *txStore) GetVendorByName(ctx context.Context, name string) (*domain.Vendor, error) {
	var v domain.Vendor
	err := t.tx.GetContext(ctx, &v, "SELECT * FROM vendors WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("txStore.GetVendorByName: %w", err)
	}
	return &v, nil
}

func (t *txStore) InsertVendor(ctx context.Context, vendor *domain.Vendor) error {
	query := `INSERT INTO vendors (name, gst_no, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := t.tx.QueryRowxContext(ctx, query,
		vendor.Name, vendor.GSTNo, vendor.Phone, vendor.Address).
		Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("txStore.InsertVendor: %w", err)
	}
	return nil
}
