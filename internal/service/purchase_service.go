package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/port"
)

// PurchaseItemInput is one requested purchase line. ID is set when an
// update should edit an existing line in place; new lines leave it nil.
type PurchaseItemInput struct {
	ID        *int64          `json:"id"`
	ProductID int64           `json:"product_id" binding:"required"`
	Rate      decimal.Decimal `json:"rate"`
	Size      decimal.Decimal `json:"size" binding:"required"`
	Unit      string          `json:"unit"`
}

// CreatePurchaseInput is the DTO for recording a vendor purchase.
type CreatePurchaseInput struct {
	VendorID int64               `json:"vendor_id" binding:"required"`
	GSTNo    string              `json:"gst_no"`
	BillNo   string              `json:"bill_no"`
	BillDate string              `json:"bill_date" binding:"required"`
	Items    []PurchaseItemInput `json:"items" binding:"required"`
	Remarks  string              `json:"remarks"`
}

// UpdatePurchaseInput is the DTO for editing a purchase. VendorName, when
// set, resolves or creates the vendor by name. Items are upserted: lines
// with an id are edited in place, lines without are appended.
type UpdatePurchaseInput struct {
	VendorID   *int64              `json:"vendor_id"`
	VendorName *string             `json:"vendor_name"`
	GSTNo      *string             `json:"gst_no"`
	BillNo     *string             `json:"bill_no"`
	BillDate   *string             `json:"bill_date"`
	Remarks    *string             `json:"remarks"`
	Items      []PurchaseItemInput `json:"items"`
}

// PurchaseSummary carries informational line-level tax sums. The header
// total itself is the plain sum of rate*size with no GST or discount.
type PurchaseSummary struct {
	TotalTaxable decimal.Decimal `json:"total_taxable"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// PurchaseResult is returned from purchase create and update.
type PurchaseResult struct {
	Purchase domain.Purchase       `json:"purchase"`
	Items    []domain.PurchaseItem `json:"items"`
	Summary  PurchaseSummary       `json:"summary"`
}

// PurchaseService is the inbound mirror of the sale engine: it computes
// totals and credits stock as vendor purchases are recorded and edited.
type PurchaseService interface {
	Create(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error)
	Update(ctx context.Context, id int64, input UpdatePurchaseInput) (*PurchaseResult, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.PurchaseWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error)
}

type purchaseService struct {
	uow       port.UnitOfWork
	purchases port.PurchaseRepository
}

// NewPurchaseService creates a new PurchaseService implementation.
func NewPurchaseService(uow port.UnitOfWork, purchases port.PurchaseRepository) PurchaseService {
	return &purchaseService{uow: uow, purchases: purchases}
}

func (s *purchaseService) Create(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error) {
	if input.VendorID == 0 {
		return nil, domain.NewValidationError("vendor_id is required")
	}
	billDate, err := parseDate(input.BillDate, "bill_date")
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("items must not be empty")
	}
	if err := validatePurchaseItems(input.Items); err != nil {
		return nil, err
	}

	var result *PurchaseResult
	err = s.uow.WithinTx(ctx, func(tx port.Tx) error {
		total := decimal.Zero
		for _, item := range input.Items {
			total = total.Add(item.Rate.Mul(item.Size))
		}

		purchase := &domain.Purchase{
			VendorID:    input.VendorID,
			GSTNo:       input.GSTNo,
			BillNo:      strings.TrimSpace(input.BillNo),
			BillDate:    billDate,
			TotalAmount: money.Round2(total),
			Status:      domain.RecordStatusActive,
			Remarks:     input.Remarks,
		}
		if err := tx.InsertPurchase(ctx, purchase); err != nil {
			return err
		}

		items := make([]domain.PurchaseItem, 0, len(input.Items))
		summary := PurchaseSummary{TotalTaxable: decimal.Zero, TotalGST: decimal.Zero}
		for _, item := range input.Items {
			line, gst, err := insertPurchaseLine(ctx, tx, purchase.ID, item)
			if err != nil {
				return err
			}
			items = append(items, *line)
			summary.TotalTaxable = summary.TotalTaxable.Add(line.Rate.Mul(line.Size))
			summary.TotalGST = summary.TotalGST.Add(gst)
		}
		summary.TotalTaxable = money.Round2(summary.TotalTaxable)
		summary.TotalGST = money.Round2(summary.TotalGST)
		summary.GrandTotal = summary.TotalTaxable.Add(summary.TotalGST)

		result = &PurchaseResult{Purchase: *purchase, Items: items, Summary: summary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *purchaseService) Update(ctx context.Context, id int64, input UpdatePurchaseInput) (*PurchaseResult, error) {
	if input.Items != nil {
		if err := validatePurchaseItems(input.Items); err != nil {
			return nil, err
		}
	}

	var result *PurchaseResult
	err := s.uow.WithinTx(ctx, func(tx port.Tx) error {
		purchase, err := tx.GetPurchase(ctx, id)
		if err != nil {
			return err
		}

		if input.VendorName != nil && strings.TrimSpace(*input.VendorName) != "" {
			vendor, err := resolveVendorByName(ctx, tx, strings.TrimSpace(*input.VendorName))
			if err != nil {
				return err
			}
			purchase.VendorID = vendor.ID
		} else if input.VendorID != nil {
			purchase.VendorID = *input.VendorID
		}
		if input.GSTNo != nil {
			purchase.GSTNo = *input.GSTNo
		}
		if input.BillNo != nil {
			purchase.BillNo = strings.TrimSpace(*input.BillNo)
		}
		if input.BillDate != nil {
			billDate, err := parseDate(*input.BillDate, "bill_date")
			if err != nil {
				return err
			}
			purchase.BillDate = billDate
		}
		if input.Remarks != nil {
			purchase.Remarks = *input.Remarks
		}

		summary := PurchaseSummary{TotalTaxable: decimal.Zero, TotalGST: decimal.Zero}
		for _, item := range input.Items {
			if item.ID != nil {
				gst, err := updatePurchaseLine(ctx, tx, purchase.ID, *item.ID, item)
				if err != nil {
					return err
				}
				summary.TotalGST = summary.TotalGST.Add(gst)
			} else {
				_, gst, err := insertPurchaseLine(ctx, tx, purchase.ID, item)
				if err != nil {
					return err
				}
				summary.TotalGST = summary.TotalGST.Add(gst)
			}
		}

		// Header total is recomputed from the full surviving line set, not
		// just the lines touched in this request.
		items, err := tx.ListPurchaseItems(ctx, purchase.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, line := range items {
			total = total.Add(line.Rate.Mul(line.Size))
		}
		purchase.TotalAmount = money.Round2(total)
		if err := tx.UpdatePurchase(ctx, purchase); err != nil {
			return err
		}

		summary.TotalTaxable = purchase.TotalAmount
		summary.TotalGST = money.Round2(summary.TotalGST)
		summary.GrandTotal = summary.TotalTaxable.Add(summary.TotalGST)
		result = &PurchaseResult{Purchase: *purchase, Items: items, Summary: summary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a purchase and its lines. Credited stock is deliberately
// not clawed back; received goods stay on the shelf even when the paper
// record goes away.
func (s *purchaseService) Delete(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(tx port.Tx) error {
		if _, err := tx.GetPurchase(ctx, id); err != nil {
			return err
		}
		if err := tx.DeletePurchaseItems(ctx, id); err != nil {
			return err
		}
		return tx.DeletePurchase(ctx, id)
	})
}

func (s *purchaseService) GetByID(ctx context.Context, id int64) (*domain.PurchaseWithItems, error) {
	return s.purchases.GetByID(ctx, id)
}

func (s *purchaseService) List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error) {
	return s.purchases.List(ctx, offset, limit)
}

// insertPurchaseLine persists a new line and credits its full quantity to
// stock. Returns the informational GST amount for the response summary,
// derived from the product's own GST percentage.
func insertPurchaseLine(ctx context.Context, tx port.Tx, purchaseID int64, item PurchaseItemInput) (*domain.PurchaseItem, decimal.Decimal, error) {
	product, err := tx.GetProductForUpdate(ctx, item.ProductID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	unit := item.Unit
	if unit == "" {
		unit = product.Unit
	}
	if unit == "" {
		unit = domain.DefaultUnit
	}

	line := &domain.PurchaseItem{
		PurchaseID: purchaseID,
		ProductID:  item.ProductID,
		Rate:       item.Rate,
		Size:       item.Size,
		Unit:       unit,
		Status:     domain.RecordStatusActive,
	}
	if err := tx.InsertPurchaseItem(ctx, line); err != nil {
		return nil, decimal.Zero, err
	}
	if err := tx.SetProductStock(ctx, product.ID, product.Size.Add(item.Size)); err != nil {
		return nil, decimal.Zero, err
	}

	gst, err := lineGST(product, item)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return line, gst, nil
}

// updatePurchaseLine edits an existing line in place and credits stock by
// the delta between the old and new quantity, so repeated edits never
// double-credit. A shrinking line debits the difference and fails like a
// sale when the product no longer has that much on hand. When the line is
// moved to a different product, the old product gives back the full old
// quantity and the new product receives the full new quantity.
func updatePurchaseLine(ctx context.Context, tx port.Tx, purchaseID, itemID int64, item PurchaseItemInput) (decimal.Decimal, error) {
	old, err := tx.GetPurchaseItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if old.PurchaseID != purchaseID {
		return decimal.Zero, domain.NewValidationError("item %d does not belong to purchase %d", itemID, purchaseID)
	}

	if old.ProductID != item.ProductID {
		oldProduct, err := tx.GetProductForUpdate(ctx, old.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		reverted := oldProduct.Size.Sub(old.Size)
		if reverted.IsNegative() {
			return decimal.Zero, &domain.InsufficientStockError{
				ProductID:   oldProduct.ID,
				ProductName: oldProduct.Name,
				Requested:   old.Size,
				Available:   oldProduct.Size,
			}
		}
		if err := tx.SetProductStock(ctx, oldProduct.ID, reverted); err != nil {
			return decimal.Zero, err
		}

		product, err := tx.GetProductForUpdate(ctx, item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if err := tx.SetProductStock(ctx, product.ID, product.Size.Add(item.Size)); err != nil {
			return decimal.Zero, err
		}
		return finishPurchaseLineUpdate(ctx, tx, old, product, item)
	}

	product, err := tx.GetProductForUpdate(ctx, item.ProductID)
	if err != nil {
		return decimal.Zero, err
	}

	delta := item.Size.Sub(old.Size)
	newStock := product.Size.Add(delta)
	if newStock.IsNegative() {
		return decimal.Zero, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   delta.Neg(),
			Available:   product.Size,
		}
	}
	if !delta.IsZero() {
		if err := tx.SetProductStock(ctx, product.ID, newStock); err != nil {
			return decimal.Zero, err
		}
	}
	return finishPurchaseLineUpdate(ctx, tx, old, product, item)
}

func finishPurchaseLineUpdate(ctx context.Context, tx port.Tx, old *domain.PurchaseItem, product *domain.Product, item PurchaseItemInput) (decimal.Decimal, error) {
	old.ProductID = item.ProductID
	old.Rate = item.Rate
	old.Size = item.Size
	if item.Unit != "" {
		old.Unit = item.Unit
	}
	if err := tx.UpdatePurchaseItem(ctx, old); err != nil {
		return decimal.Zero, err
	}
	return lineGST(product, item)
}

func lineGST(product *domain.Product, item PurchaseItemInput) (decimal.Decimal, error) {
	gstPercent, err := money.ParseGSTPercent(product.GST)
	if err != nil {
		return decimal.Zero, err
	}
	return item.Rate.Mul(item.Size).Mul(gstPercent).Div(decimal.NewFromInt(100)), nil
}

// resolveVendorByName returns the vendor with the given name, creating it
// when absent.
func resolveVendorByName(ctx context.Context, tx port.Tx, name string) (*domain.Vendor, error) {
	vendor, err := tx.GetVendorByName(ctx, name)
	if err == nil {
		return vendor, nil
	}
	if !errors.Is(err, domain.ErrVendorNotFound) {
		return nil, err
	}
	vendor = &domain.Vendor{Name: name}
	if err := tx.InsertVendor(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func validatePurchaseItems(items []PurchaseItemInput) error {
	for i, item := range items {
		if item.ProductID == 0 {
			return domain.NewValidationError("items[%d].product_id is required", i)
		}
		if !item.Size.IsPositive() {
			return domain.NewValidationError("items[%d].size must be positive", i)
		}
		if item.Rate.IsNegative() {
			return domain.NewValidationError("items[%d].rate must not be negative", i)
		}
	}
	return nil
}
