package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billmint/internal/config"
	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/port"
)

// billNoAttempts bounds retries when an auto-generated bill number loses a
// uniqueness race (possible when legacy rows sit ahead of the counter).
const billNoAttempts = 3

const dateLayout = "2006-01-02"

// SaleItemInput is one requested sale line. Rate and GSTPercent default to
// the product's own values when omitted; DiscountRate defaults to 0 and
// Unit to the product's unit (PCS as a last resort).
type SaleItemInput struct {
	ProductID    int64            `json:"product_id" binding:"required"`
	Qty          decimal.Decimal  `json:"qty" binding:"required"`
	Rate         *decimal.Decimal `json:"rate"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	GSTPercent   *decimal.Decimal `json:"gst_percent"`
	Unit         string           `json:"unit"`
}

// CreateSaleInput is the DTO for creating a sale.
type CreateSaleInput struct {
	CustomerID    int64           `json:"customer_id" binding:"required"`
	BillNo        string          `json:"bill_no"`
	BillDate      string          `json:"bill_date" binding:"required"`
	Items         []SaleItemInput `json:"items" binding:"required"`
	CashReceived  decimal.Decimal `json:"cash_received"`
	PaymentMethod string          `json:"payment_method"`
	Remarks       string          `json:"remarks"`
}

// UpdateSaleInput is the DTO for updating a sale. A nil Items leaves the
// line set and totals untouched; a non-nil Items fully replaces them.
type UpdateSaleInput struct {
	CustomerID    *int64          `json:"customer_id"`
	BillNo        *string         `json:"bill_no"`
	BillDate      *string         `json:"bill_date"`
	PaymentMethod *string         `json:"payment_method"`
	Status        *string         `json:"status"`
	Remarks       *string         `json:"remarks"`
	Items         []SaleItemInput `json:"items"`
}

// CreateSaleResult is returned from a committed sale creation.
type CreateSaleResult struct {
	ID            int64                `json:"id"`
	BillNo        string               `json:"bill_no"`
	TotalTaxable  decimal.Decimal      `json:"total_taxable"`
	TotalGST      decimal.Decimal      `json:"total_gst"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PreviousDue   decimal.Decimal      `json:"previous_due"`
	CashReceived  decimal.Decimal      `json:"cash_received"`
	NewDue        decimal.Decimal      `json:"new_due"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// UpdateSaleResult is returned from a committed sale update.
type UpdateSaleResult struct {
	ID           int64           `json:"id"`
	TotalTaxable decimal.Decimal `json:"total_taxable"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// SaleService is the sale transaction engine.
type SaleService interface {
	Create(ctx context.Context, input CreateSaleInput) (*CreateSaleResult, error)
	Update(ctx context.Context, id int64, input UpdateSaleInput) (*UpdateSaleResult, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error)
}

type saleService struct {
	uow   port.UnitOfWork
	sales port.SaleRepository
	cfg   config.SalesConfig
}

// NewSaleService creates a new SaleService implementation.
func NewSaleService(uow port.UnitOfWork, sales port.SaleRepository, cfg config.SalesConfig) SaleService {
	return &saleService{uow: uow, sales: sales, cfg: cfg}
}

func (s *saleService) Create(ctx context.Context, input CreateSaleInput) (*CreateSaleResult, error) {
	if input.CustomerID == 0 {
		return nil, domain.NewValidationError("customer_id is required")
	}
	billDate, err := parseDate(input.BillDate, "bill_date")
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("items must not be empty")
	}
	if input.CashReceived.IsNegative() {
		return nil, domain.NewValidationError("cash_received must not be negative")
	}
	if err := validateSaleItems(input.Items); err != nil {
		return nil, err
	}

	autoNumber := strings.TrimSpace(input.BillNo) == ""
	attempts := 1
	if autoNumber {
		attempts = billNoAttempts
	}

	var result *CreateSaleResult
	var drawnSeq int64
	for i := 0; i < attempts; i++ {
		err = s.uow.WithinTx(ctx, func(tx port.Tx) error {
			r, txErr := s.createInTx(ctx, tx, input, billDate, autoNumber, &drawnSeq)
			if txErr != nil {
				return txErr
			}
			result = r
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !autoNumber || !errors.Is(err, domain.ErrDuplicateBillNo) {
			return nil, err
		}
		// The rollback reverted the counter increment, so redrawing would
		// produce the same colliding number. Push the counter past it in
		// its own committed transaction before trying again.
		bumpErr := s.uow.WithinTx(ctx, func(tx port.Tx) error {
			return tx.EnsureBillSequence(ctx, drawnSeq)
		})
		if bumpErr != nil {
			return nil, bumpErr
		}
	}
	return nil, err
}

func (s *saleService) createInTx(ctx context.Context, tx port.Tx, input CreateSaleInput, billDate time.Time, autoNumber bool, drawnSeq *int64) (*CreateSaleResult, error) {
	billNo := strings.TrimSpace(input.BillNo)
	if autoNumber {
		seq, err := tx.NextBillNumber(ctx)
		if err != nil {
			return nil, err
		}
		*drawnSeq = seq
		billNo = domain.FormatBillNo(seq)
	}

	sale := &domain.Sale{
		CustomerID:    input.CustomerID,
		BillNo:        billNo,
		BillDate:      billDate,
		TotalTaxable:  decimal.Zero,
		TotalGST:      decimal.Zero,
		TotalAmount:   decimal.Zero,
		PaymentStatus: domain.PaymentStatusUnpaid,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.RecordStatusActive,
		Remarks:       input.Remarks,
	}
	if err := tx.InsertSale(ctx, sale); err != nil {
		return nil, err
	}

	totals, err := insertSaleLines(ctx, tx, sale.ID, input.Items)
	if err != nil {
		return nil, err
	}
	sale.TotalTaxable = totals.taxable
	sale.TotalGST = totals.gst
	sale.TotalAmount = totals.net
	if err := tx.UpdateSale(ctx, sale); err != nil {
		return nil, err
	}

	// Outstanding due before this sale: everything billed minus everything
	// paid, floored at zero. Computed before the cash receipt is recorded.
	billed, err := tx.SumCustomerSales(ctx, input.CustomerID, sale.ID)
	if err != nil {
		return nil, err
	}
	paid, err := tx.SumCustomerPayments(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	previousDue := money.Floor0(billed.Sub(paid))
	grossDue := previousDue.Add(sale.TotalAmount)
	newDue := grossDue

	cash := input.CashReceived
	if cash.IsPositive() {
		payment := &domain.SalePayment{
			SaleID:      sale.ID,
			CustomerID:  input.CustomerID,
			PaymentDate: billDate,
			Amount:      cash,
			Method:      input.PaymentMethod,
			Remarks:     "Received at billing",
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return nil, err
		}
		newDue = money.Floor0(grossDue.Sub(cash))
	}

	var status domain.PaymentStatus
	switch {
	case !newDue.IsPositive() && (cash.IsPositive() || grossDue.IsZero()):
		status = domain.PaymentStatusPaid
	case cash.IsPositive() && newDue.IsPositive():
		status = domain.PaymentStatusPartial
	default:
		status = domain.PaymentStatusUnpaid
	}
	if err := tx.SetSalePaymentStatus(ctx, sale.ID, status); err != nil {
		return nil, err
	}

	return &CreateSaleResult{
		ID:            sale.ID,
		BillNo:        sale.BillNo,
		TotalTaxable:  sale.TotalTaxable,
		TotalGST:      sale.TotalGST,
		TotalAmount:   sale.TotalAmount,
		PreviousDue:   previousDue,
		CashReceived:  cash,
		NewDue:        newDue,
		PaymentStatus: status,
	}, nil
}

func (s *saleService) Update(ctx context.Context, id int64, input UpdateSaleInput) (*UpdateSaleResult, error) {
	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, domain.NewValidationError("items must not be empty when provided")
		}
		if err := validateSaleItems(input.Items); err != nil {
			return nil, err
		}
	}
	if input.BillNo != nil && strings.TrimSpace(*input.BillNo) == "" {
		return nil, domain.NewValidationError("bill_no must not be empty")
	}
	if input.Status != nil {
		st := domain.RecordStatus(*input.Status)
		if st != domain.RecordStatusActive && st != domain.RecordStatusCancelled {
			return nil, domain.NewValidationError("status must be Active or Cancelled")
		}
	}

	var result *UpdateSaleResult
	err := s.uow.WithinTx(ctx, func(tx port.Tx) error {
		sale, err := tx.GetSale(ctx, id)
		if err != nil {
			return err
		}

		if input.CustomerID != nil {
			sale.CustomerID = *input.CustomerID
		}
		if input.BillNo != nil {
			sale.BillNo = strings.TrimSpace(*input.BillNo)
		}
		if input.BillDate != nil {
			billDate, err := parseDate(*input.BillDate, "bill_date")
			if err != nil {
				return err
			}
			sale.BillDate = billDate
		}
		if input.PaymentMethod != nil {
			sale.PaymentMethod = *input.PaymentMethod
		}
		if input.Status != nil {
			sale.Status = domain.RecordStatus(*input.Status)
		}
		if input.Remarks != nil {
			sale.Remarks = *input.Remarks
		}

		if input.Items != nil {
			// Full replacement: put every old line's quantity back on the
			// shelf, then re-run the debit path against the new lines.
			oldItems, err := tx.ListSaleItems(ctx, id)
			if err != nil {
				return err
			}
			for _, item := range oldItems {
				product, err := tx.GetProductForUpdate(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if err := tx.SetProductStock(ctx, product.ID, product.Size.Add(item.Qty)); err != nil {
					return err
				}
			}
			if err := tx.DeleteSaleItems(ctx, id); err != nil {
				return err
			}

			totals, err := insertSaleLines(ctx, tx, id, input.Items)
			if err != nil {
				return err
			}
			sale.TotalTaxable = totals.taxable
			sale.TotalGST = totals.gst
			sale.TotalAmount = totals.net

			paid, err := tx.SumSalePayments(ctx, id)
			if err != nil {
				return err
			}
			sale.PaymentStatus = statusFromPayments(paid, sale.TotalAmount)
		}

		if err := tx.UpdateSale(ctx, sale); err != nil {
			return err
		}
		result = &UpdateSaleResult{
			ID:           sale.ID,
			TotalTaxable: sale.TotalTaxable,
			TotalGST:     sale.TotalGST,
			TotalAmount:  sale.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *saleService) Delete(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(tx port.Tx) error {
		if _, err := tx.GetSale(ctx, id); err != nil {
			return err
		}
		if s.cfg.RestoreStockOnDelete {
			items, err := tx.ListSaleItems(ctx, id)
			if err != nil {
				return err
			}
			for _, item := range items {
				product, err := tx.GetProductForUpdate(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if err := tx.SetProductStock(ctx, product.ID, product.Size.Add(item.Qty)); err != nil {
					return err
				}
			}
		}
		if err := tx.DeleteSaleItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteSale(ctx, id)
	})
}

func (s *saleService) GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error) {
	return s.sales.GetByID(ctx, id)
}

func (s *saleService) List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error) {
	return s.sales.List(ctx, offset, limit)
}

// saleTotals accumulates the header aggregates while lines are inserted.
type saleTotals struct {
	taxable decimal.Decimal
	gst     decimal.Decimal
	net     decimal.Decimal
}

// insertSaleLines locks each product, checks availability, computes and
// persists the line, and debits stock. Each monetary field is rounded once
// when the line is persisted; header totals are exact sums of the persisted
// values so they always reconcile with the lines.
func insertSaleLines(ctx context.Context, tx port.Tx, saleID int64, items []SaleItemInput) (saleTotals, error) {
	totals := saleTotals{taxable: decimal.Zero, gst: decimal.Zero, net: decimal.Zero}

	for _, item := range items {
		product, err := tx.GetProductForUpdate(ctx, item.ProductID)
		if err != nil {
			return totals, err
		}
		if item.Qty.GreaterThan(product.Size) {
			return totals, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   item.Qty,
				Available:   product.Size,
			}
		}

		rate := product.Rate
		if item.Rate != nil {
			rate = *item.Rate
		}
		gstPercent := decimal.Zero
		if item.GSTPercent != nil {
			gstPercent = *item.GSTPercent
		} else if gstPercent, err = money.ParseGSTPercent(product.GST); err != nil {
			return totals, err
		}
		discountRate := decimal.Zero
		if item.DiscountRate != nil {
			discountRate = *item.DiscountRate
		}
		unit := item.Unit
		if unit == "" {
			unit = product.Unit
		}
		if unit == "" {
			unit = domain.DefaultUnit
		}

		amounts := money.ComputeLine(money.Line{
			Qty:             item.Qty,
			Rate:            rate,
			DiscountPercent: discountRate,
			GSTPercent:      gstPercent,
		})
		line := &domain.SaleItem{
			SaleID:         saleID,
			ProductID:      product.ID,
			Rate:           rate,
			Qty:            item.Qty,
			DiscountRate:   discountRate,
			DiscountAmount: money.Round2(amounts.DiscountTotal),
			TaxableAmount:  money.Round2(amounts.Taxable),
			GSTPercent:     gstPercent,
			GSTAmount:      money.Round2(amounts.GSTAmount),
			NetTotal:       money.Round2(amounts.FinalAmount),
			Unit:           unit,
			Status:         domain.RecordStatusActive,
		}
		if err := tx.InsertSaleItem(ctx, line); err != nil {
			return totals, err
		}
		if err := tx.SetProductStock(ctx, product.ID, product.Size.Sub(item.Qty)); err != nil {
			return totals, err
		}

		totals.taxable = totals.taxable.Add(line.TaxableAmount)
		totals.gst = totals.gst.Add(line.GSTAmount)
		totals.net = totals.net.Add(line.NetTotal)
	}
	return totals, nil
}

func validateSaleItems(items []SaleItemInput) error {
	for i, item := range items {
		if item.ProductID == 0 {
			return domain.NewValidationError("items[%d].product_id is required", i)
		}
		if !item.Qty.IsPositive() {
			return domain.NewValidationError("items[%d].qty must be positive", i)
		}
		if item.Rate != nil && item.Rate.IsNegative() {
			return domain.NewValidationError("items[%d].rate must not be negative", i)
		}
		if item.DiscountRate != nil && item.DiscountRate.IsNegative() {
			return domain.NewValidationError("items[%d].discount_rate must not be negative", i)
		}
		if item.GSTPercent != nil && item.GSTPercent.IsNegative() {
			return domain.NewValidationError("items[%d].gst_percent must not be negative", i)
		}
	}
	return nil
}

func parseDate(value, field string) (time.Time, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError("%s must be a date in YYYY-MM-DD form", field)
	}
	return date, nil
}
