package service

import (
	"context"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/port"
)

// AddPaymentInput is the DTO for recording a payment against a sale.
type AddPaymentInput struct {
	SaleID      int64           `json:"sale_id" binding:"required"`
	CustomerID  int64           `json:"customer_id" binding:"required"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method"`
	Remarks     string          `json:"remarks"`
}

// PaymentResult reports the sale's ledger position after a payment write.
type PaymentResult struct {
	SaleID        int64                `json:"sale_id"`
	Paid          decimal.Decimal      `json:"paid"`
	Due           decimal.Decimal      `json:"due"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// DeletePaymentResult reports how many rows a payment deletion removed.
type DeletePaymentResult struct {
	AffectedRows int64 `json:"affected_rows"`
}

// LedgerEntry is one sale in a customer statement with its payments.
type LedgerEntry struct {
	SaleID      int64                `json:"sale_id"`
	BillNo      string               `json:"bill_no"`
	Date        string               `json:"date"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Paid        decimal.Decimal      `json:"paid"`
	Pending     decimal.Decimal      `json:"pending"`
	Payments    []domain.SalePayment `json:"payments"`
}

// CustomerLedger is a customer's full statement with grand totals.
type CustomerLedger struct {
	Ledger       []LedgerEntry   `json:"ledger"`
	TotalSale    decimal.Decimal `json:"totalSale"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	TotalPending decimal.Decimal `json:"totalPending"`
}

// PaymentService is the payment ledger: it records and removes payments,
// keeps the owning sale's payment status in step, and produces customer
// statements.
type PaymentService interface {
	Add(ctx context.Context, input AddPaymentInput) (*PaymentResult, error)
	Delete(ctx context.Context, id int64) (*DeletePaymentResult, error)
	ListBySale(ctx context.Context, saleID int64) ([]domain.SalePayment, error)
	CustomerLedger(ctx context.Context, customerID int64) (*CustomerLedger, error)
}

type paymentService struct {
	uow      port.UnitOfWork
	payments port.SalePaymentRepository
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(uow port.UnitOfWork, payments port.SalePaymentRepository) PaymentService {
	return &paymentService{uow: uow, payments: payments}
}

func (s *paymentService) Add(ctx context.Context, input AddPaymentInput) (*PaymentResult, error) {
	if input.SaleID == 0 {
		return nil, domain.NewValidationError("sale_id is required")
	}
	if input.CustomerID == 0 {
		return nil, domain.NewValidationError("customer_id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount must be positive")
	}
	paymentDate, err := parseDate(input.PaymentDate, "payment_date")
	if err != nil {
		return nil, err
	}

	var result *PaymentResult
	err = s.uow.WithinTx(ctx, func(tx port.Tx) error {
		sale, err := tx.GetSale(ctx, input.SaleID)
		if err != nil {
			return err
		}

		payment := &domain.SalePayment{
			SaleID:      input.SaleID,
			CustomerID:  input.CustomerID,
			PaymentDate: paymentDate,
			Amount:      input.Amount,
			Method:      input.Method,
			Remarks:     input.Remarks,
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}

		r, err := refreshPaymentStatus(ctx, tx, sale)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *paymentService) Delete(ctx context.Context, id int64) (*DeletePaymentResult, error) {
	var result *DeletePaymentResult
	err := s.uow.WithinTx(ctx, func(tx port.Tx) error {
		payment, err := tx.GetPayment(ctx, id)
		if err != nil {
			return err
		}
		affected, err := tx.DeletePayment(ctx, id)
		if err != nil {
			return err
		}

		sale, err := tx.GetSale(ctx, payment.SaleID)
		if err != nil {
			return err
		}
		if _, err := refreshPaymentStatus(ctx, tx, sale); err != nil {
			return err
		}
		result = &DeletePaymentResult{AffectedRows: affected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *paymentService) ListBySale(ctx context.Context, saleID int64) ([]domain.SalePayment, error) {
	return s.payments.ListBySale(ctx, saleID)
}

// CustomerLedger attaches each sale's payments, computes paid/pending per
// sale, and aggregates grand totals. Both reads run in one transaction so
// the statement reflects a single snapshot; a payment landing between the
// two queries cannot show up without its sale.
func (s *paymentService) CustomerLedger(ctx context.Context, customerID int64) (*CustomerLedger, error) {
	var sales []domain.Sale
	var payments []domain.SalePayment
	err := s.uow.WithinTx(ctx, func(tx port.Tx) error {
		var err error
		if sales, err = tx.ListCustomerSales(ctx, customerID); err != nil {
			return err
		}
		payments, err = tx.ListCustomerPayments(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	bySale := make(map[int64][]domain.SalePayment, len(sales))
	for _, p := range payments {
		bySale[p.SaleID] = append(bySale[p.SaleID], p)
	}

	ledger := &CustomerLedger{
		Ledger:       make([]LedgerEntry, 0, len(sales)),
		TotalSale:    decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
	}
	for _, sale := range sales {
		paid := decimal.Zero
		salePayments := bySale[sale.ID]
		for _, p := range salePayments {
			paid = paid.Add(p.Amount)
		}
		pending := money.Floor0(sale.TotalAmount.Sub(paid))
		if salePayments == nil {
			salePayments = []domain.SalePayment{}
		}

		ledger.Ledger = append(ledger.Ledger, LedgerEntry{
			SaleID:      sale.ID,
			BillNo:      sale.BillNo,
			Date:        sale.BillDate.Format(dateLayout),
			TotalAmount: sale.TotalAmount,
			Paid:        paid,
			Pending:     pending,
			Payments:    salePayments,
		})
		ledger.TotalSale = ledger.TotalSale.Add(sale.TotalAmount)
		ledger.TotalPaid = ledger.TotalPaid.Add(paid)
		ledger.TotalPending = ledger.TotalPending.Add(pending)
	}
	return ledger, nil
}

// refreshPaymentStatus recomputes and persists the sale's payment status
// from its cumulative payments, inside the caller's transaction.
func refreshPaymentStatus(ctx context.Context, tx port.Tx, sale *domain.Sale) (*PaymentResult, error) {
	paid, err := tx.SumSalePayments(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	status := statusFromPayments(paid, sale.TotalAmount)
	if err := tx.SetSalePaymentStatus(ctx, sale.ID, status); err != nil {
		return nil, err
	}
	return &PaymentResult{
		SaleID:        sale.ID,
		Paid:          paid,
		Due:           money.Floor0(sale.TotalAmount.Sub(paid)),
		PaymentStatus: status,
	}, nil
}

// statusFromPayments derives the ledger status: nothing paid is Unpaid,
// anything paid below the total is Partial, total or more is Paid.
func statusFromPayments(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case !paid.IsPositive():
		return domain.PaymentStatusUnpaid
	case paid.LessThan(total):
		return domain.PaymentStatusPartial
	default:
		return domain.PaymentStatusPaid
	}
}
