package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billmint/internal/domain"
	"billmint/internal/port"
)

type salePaymentRepo struct {
	db *sqlx.DB
}

// NewSalePaymentRepo creates a new PostgreSQL-backed SalePaymentRepository.
func NewSalePaymentRepo(db *sqlx.DB) port.SalePaymentRepository {
	return &salePaymentRepo{db: db}
}

func (r *salePaymentRepo) ListBySale(ctx context.Context, saleID int64) ([]domain.SalePayment, error) {
	var payments []domain.SalePayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM sale_payments WHERE sale_id = $1 ORDER BY payment_date, id", saleID)
	if err != nil {
		return nil, fmt.Errorf("salePaymentRepo.ListBySale: %w", err)
	}
	return payments, nil
}
