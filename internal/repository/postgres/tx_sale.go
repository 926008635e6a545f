package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

func (t *txStore) InsertSale(ctx context.Context, sale *domain.Sale) error {
	query := `INSERT INTO sales
		(customer_id, bill_no, bill_date, total_taxable, total_gst, total_amount,
		 payment_status, payment_method, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := t.tx.QueryRowxContext(ctx, query,
		sale.CustomerID, sale.BillNo, sale.BillDate,
		sale.TotalTaxable, sale.TotalGST, sale.TotalAmount,
		sale.PaymentStatus, sale.PaymentMethod, sale.Status, sale.Remarks).
		Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "sales_bill_no_key") {
			return domain.ErrDuplicateBillNo
		}
		return fmt.Errorf("txStore.InsertSale: %w", err)
	}
	return nil
}

func (t *txStore) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	var s domain.Sale
	err := t.tx.GetContext(ctx, &s, "SELECT * FROM sales WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("txStore.GetSale: %w", err)
	}
	return &s, nil
}

func (t *txStore) UpdateSale(ctx context.Context, sale *domain.Sale) error {
	query := `UPDATE sales SET
		customer_id = $1, bill_no = $2, bill_date = $3,
		total_taxable = $4, total_gst = $5, total_amount = $6,
		payment_status = $7, payment_method = $8, status = $9, remarks = $10,
		updated_at = now()
		WHERE id = $11`
	result, err := t.tx.ExecContext(ctx, query,
		sale.CustomerID, sale.BillNo, sale.BillDate,
		sale.TotalTaxable, sale.TotalGST, sale.TotalAmount,
		sale.PaymentStatus, sale.PaymentMethod, sale.Status, sale.Remarks, sale.ID)
	if err != nil {
		if isUniqueViolation(err, "sales_bill_no_key") {
			return domain.ErrDuplicateBillNo
		}
		return fmt.Errorf("txStore.UpdateSale: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (t *txStore) DeleteSale(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("txStore.DeleteSale: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (t *txStore) SetSalePaymentStatus(ctx context.Context, saleID int64, status domain.PaymentStatus) error {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE sales SET payment_status = $1, updated_at = now() WHERE id = $2", status, saleID)
	if err != nil {
		return fmt.Errorf("txStore.SetSalePaymentStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (t *txStore) InsertSaleItem(ctx context.Context, item *domain.SaleItem) error {
	query := `INSERT INTO sale_items
		(sale_id, product_id, rate, qty, discount_rate, discount_amount,
		 taxable_amount, gst_percent, gst_amount, net_total, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := t.tx.GetContext(ctx, &item.ID, query,
		item.SaleID, item.ProductID, item.Rate, item.Qty,
		item.DiscountRate, item.DiscountAmount, item.TaxableAmount,
		item.GSTPercent, item.GSTAmount, item.NetTotal, item.Unit, item.Status)
	if err != nil {
		return fmt.Errorf("txStore.InsertSaleItem: %w", err)
	}
	return nil
}

func (t *txStore) ListSaleItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	var items []domain.SaleItem
	err := t.tx.SelectContext(ctx, &items,
		"SELECT * FROM sale_items WHERE sale_id = $1 ORDER BY id", saleID)
	if err != nil {
		return nil, fmt.Errorf("txStore.ListSaleItems: %w", err)
	}
	return items, nil
}

func (t *txStore) DeleteSaleItems(ctx context.Context, saleID int64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM sale_items WHERE sale_id = $1", saleID)
	if err != nil {
		return fmt.Errorf("txStore.DeleteSaleItems: %w", err)
	}
	return nil
}

func (t *txStore) SumCustomerSales(ctx context.Context, customerID, excludeSaleID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM sales
		WHERE customer_id = $1 AND status <> $2 AND id <> $3`
	err := t.tx.GetContext(ctx, &total, query, customerID, domain.RecordStatusCancelled, excludeSaleID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("txStore.SumCustomerSales: %w", err)
	}
	return total, nil
}

func (t *txStore) ListCustomerSales(ctx context.Context, customerID int64) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := t.tx.SelectContext(ctx, &sales,
		"SELECT * FROM sales WHERE customer_id = $1 ORDER BY bill_date, id", customerID)
	if err != nil {
		return nil, fmt.Errorf("txStore.ListCustomerSales: %w", err)
	}
	return sales, nil
}

func (t *txStore) InsertPayment(ctx context.Context, payment *domain.SalePayment) error {
	query := `INSERT INTO sale_payments
		(sale_id, customer_id, payment_date, amount, method, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := t.tx.QueryRowxContext(ctx, query,
		payment.SaleID, payment.CustomerID, payment.PaymentDate,
		payment.Amount, payment.Method, payment.Remarks).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("txStore.InsertPayment: %w", err)
	}
	return nil
}

func (t *txStore) GetPayment(ctx context.Context, id int64) (*domain.SalePayment, error) {
	var p domain.SalePayment
	err := t.tx.GetContext(ctx, &p, "SELECT * FROM sale_payments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("txStore.GetPayment: %w", err)
	}
	return &p, nil
}

func (t *txStore) DeletePayment(ctx context.Context, id int64) (int64, error) {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM sale_payments WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("txStore.DeletePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (t *txStore) SumSalePayments(ctx context.Context, saleID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := t.tx.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = $1", saleID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("txStore.SumSalePayments: %w", err)
	}
	return total, nil
}

func (t *txStore) SumCustomerPayments(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := t.tx.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE customer_id = $1", customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("txStore.SumCustomerPayments: %w", err)
	}
	return total, nil
}

func (t *txStore) ListCustomerPayments(ctx context.Context, customerID int64) ([]domain.SalePayment, error) {
	var payments []domain.SalePayment
	err := t.tx.SelectContext(ctx, &payments,
		"SELECT * FROM sale_payments WHERE customer_id = $1 ORDER BY payment_date, id", customerID)
	if err != nil {
		return nil, fmt.Errorf("txStore.ListCustomerPayments: %w", err)
	}
	return payments, nil
}
