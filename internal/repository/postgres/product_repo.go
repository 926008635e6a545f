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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	if product.Unit == "" {
		product.Unit = domain.DefaultUnit
	}
	query := `INSERT INTO products (name, rate, size, gst, unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		product.Name, product.Rate, product.Size, product.GST, product.Unit).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List count: %w", err)
	}

	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, total, nil
}

// Update writes name, rate, gst, and unit. Stock (size) is deliberately
// not writable here; it moves only through the transactional stock ledger.
func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $1, rate = $2, gst = $3, unit = $4, updated_at = now()
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Rate, product.GST, product.Unit, product.ID)
	if err != nil {
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
