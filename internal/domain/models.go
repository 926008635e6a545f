package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Size is the available stock quantity; it is
// debited by sale lines and credited by purchase lines, always under a row
// lock, and never drops below zero. GST keeps the legacy "18%" text form;
// use money.ParseGSTPercent to read it.
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Rate      decimal.Decimal `db:"rate" json:"rate"`
	Size      decimal.Decimal `db:"size" json:"size"`
	GST       string          `db:"gst" json:"gst"`
	Unit      string          `db:"unit" json:"unit"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Customer is a buyer with a running due ledger across sales and payments.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vendor is a supplier referenced by purchases and purchase orders.
type Vendor struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTNo     string    `db:"gst_no" json:"gst_no"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Sale is a billing header. Totals and PaymentStatus are derived from line
// items and payments inside the sale transaction, never edited directly.
type Sale struct {
	ID            int64           `db:"id" json:"id"`
	CustomerID    int64           `db:"customer_id" json:"customer_id"`
	BillNo        string          `db:"bill_no" json:"bill_no"`
	BillDate      time.Time       `db:"bill_date" json:"bill_date"`
	TotalTaxable  decimal.Decimal `db:"total_taxable" json:"total_taxable"`
	TotalGST      decimal.Decimal `db:"total_gst" json:"total_gst"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Status        RecordStatus    `db:"status" json:"status"`
	Remarks       string          `db:"remarks" json:"remarks"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// SaleItem is one sold line. Invariants:
// taxable_amount = rate*qty - discount_amount, net_total = taxable + gst.
type SaleItem struct {
	ID             int64           `db:"id" json:"id"`
	SaleID         int64           `db:"sale_id" json:"sale_id"`
	ProductID      int64           `db:"product_id" json:"product_id"`
	Rate           decimal.Decimal `db:"rate" json:"rate"`
	Qty            decimal.Decimal `db:"qty" json:"qty"`
	DiscountRate   decimal.Decimal `db:"discount_rate" json:"discount_rate"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	GSTPercent     decimal.Decimal `db:"gst_percent" json:"gst_percent"`
	GSTAmount      decimal.Decimal `db:"gst_amount" json:"gst_amount"`
	NetTotal       decimal.Decimal `db:"net_total" json:"net_total"`
	Unit           string          `db:"unit" json:"unit"`
	Status         RecordStatus    `db:"status" json:"status"`
}

// SalePayment is an append-only receipt against a sale. CustomerID is
// denormalized so customer ledgers aggregate without joining sales.
type SalePayment struct {
	ID          int64           `db:"id" json:"id"`
	SaleID      int64           `db:"sale_id" json:"sale_id"`
	CustomerID  int64           `db:"customer_id" json:"customer_id"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Method      string          `db:"method" json:"method"`
	Remarks     string          `db:"remarks" json:"remarks"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Purchase is an inbound stock header. TotalAmount is the plain sum of
// rate*size over its lines, with no discount or GST applied.
type Purchase struct {
	ID          int64           `db:"id" json:"id"`
	VendorID    int64           `db:"vendor_id" json:"vendor_id"`
	GSTNo       string          `db:"gst_no" json:"gst_no"`
	BillNo      string          `db:"bill_no" json:"bill_no"`
	BillDate    time.Time       `db:"bill_date" json:"bill_date"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status      RecordStatus    `db:"status" json:"status"`
	Remarks     string          `db:"remarks" json:"remarks"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// PurchaseItem is one purchased line; Size is the quantity credited to the
// product's stock when the line commits.
type PurchaseItem struct {
	ID         int64           `db:"id" json:"id"`
	PurchaseID int64           `db:"purchase_id" json:"purchase_id"`
	ProductID  int64           `db:"product_id" json:"product_id"`
	Rate       decimal.Decimal `db:"rate" json:"rate"`
	Size       decimal.Decimal `db:"size" json:"size"`
	Unit       string          `db:"unit" json:"unit"`
	Status     RecordStatus    `db:"status" json:"status"`
}

// PurchaseOrder is a pre-purchase quotation. It never touches stock.
type PurchaseOrder struct {
	ID          int64           `db:"id" json:"id"`
	VendorID    int64           `db:"vendor_id" json:"vendor_id"`
	OrderDate   time.Time       `db:"order_date" json:"order_date"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	GSTAmount   decimal.Decimal `db:"gst_amount" json:"gst_amount"`
	FinalAmount decimal.Decimal `db:"final_amount" json:"final_amount"`
	Status      RecordStatus    `db:"status" json:"status"`
	Remarks     string          `db:"remarks" json:"remarks"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// PurchaseOrderItem carries quotation-grade amounts: every monetary field
// is rounded to two decimals at computation time, unlike sale lines.
type PurchaseOrderItem struct {
	ID              int64           `db:"id" json:"id"`
	PurchaseOrderID int64           `db:"purchase_order_id" json:"purchase_order_id"`
	ProductID       int64           `db:"product_id" json:"product_id"`
	Qty             decimal.Decimal `db:"qty" json:"qty"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	DiscountRate    decimal.Decimal `db:"discount_rate" json:"discount_rate"`
	DiscountTotal   decimal.Decimal `db:"discount_total" json:"discount_total"`
	GSTPercent      decimal.Decimal `db:"gst_percent" json:"gst_percent"`
	GSTAmount       decimal.Decimal `db:"gst_amount" json:"gst_amount"`
	FinalAmount     decimal.Decimal `db:"final_amount" json:"final_amount"`
	Unit            string          `db:"unit" json:"unit"`
}

// SaleWithItems bundles a sale header with its lines for read endpoints.
type SaleWithItems struct {
	Sale
	Items []SaleItem `json:"items"`
}

// PurchaseWithItems bundles a purchase header with its lines.
type PurchaseWithItems struct {
	Purchase
	Items []PurchaseItem `json:"items"`
}

// PurchaseOrderWithItems bundles a purchase order with its lines.
type PurchaseOrderWithItems struct {
	PurchaseOrder
	Items []PurchaseOrderItem `json:"items"`
}
