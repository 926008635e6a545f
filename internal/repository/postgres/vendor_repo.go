package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billmint/internal/domain"
	"billmint/internal/port"
)

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `INSERT INTO vendors (name, gst_no, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		vendor.Name, vendor.GSTNo, vendor.Phone, vendor.Address).
		Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}

func (r *vendorRepo) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.GetContext(ctx, &v, "SELECT * FROM vendors WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *vendorRepo) GetByName(ctx context.Context, name string) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.GetContext(ctx, &v, "SELECT * FROM vendors WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByName: %w", err)
	}
	return &v, nil
}

func (r *vendorRepo) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vendors"); err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List count: %w", err)
	}

	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	query := `UPDATE vendors SET name = $1, gst_no = $2, phone = $3, address = $4, updated_at = now()
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		vendor.Name, vendor.GSTNo, vendor.Phone, vendor.Address, vendor.ID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("vendorRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
