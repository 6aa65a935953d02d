package dto

import (
	"time"

	"pharmabill/internal/core/types"
)

// LineCreate is one priced row of an invoice or purchase.
// Tax amounts are never accepted; the engine computes them.
type LineCreate struct {
	ProductID string      `json:"productId" binding:"required"`
	BatchID   string      `json:"batchId"`
	HSNCode   string      `json:"hsnCode"`
	Quantity  types.Money `json:"quantity" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
	GSTRate   types.Money `json:"gstRate"`
	CessRate  types.Money `json:"cessRate"`
	Discount  types.Money `json:"discount"`
}

// InvoiceCreate creates a sales invoice.
type InvoiceCreate struct {
	CustomerID     string       `json:"customerId" binding:"required"`
	Date           *time.Time   `json:"date"`
	TaxType        string       `json:"taxType" binding:"required"`
	ManualCessRate types.Money  `json:"manualCessRate"`
	Discount       types.Money  `json:"discount"`
	Notes          string       `json:"notes"`
	Lines          []LineCreate `json:"lines" binding:"required"`
}

// InvoiceUpdate replaces an unposted invoice's content.
type InvoiceUpdate struct {
	Date           *time.Time   `json:"date"`
	TaxType        string       `json:"taxType" binding:"required"`
	ManualCessRate types.Money  `json:"manualCessRate"`
	Discount       types.Money  `json:"discount"`
	Notes          string       `json:"notes"`
	Lines          []LineCreate `json:"lines" binding:"required"`
	Version        int          `json:"version" binding:"required"`
}

// PurchaseCreate creates a purchase (supplier bill).
type PurchaseCreate struct {
	SupplierID         string       `json:"supplierId" binding:"required"`
	Date               *time.Time   `json:"date"`
	SupplierBillNumber string       `json:"supplierBillNumber"`
	SupplierBillDate   *time.Time   `json:"supplierBillDate"`
	TaxType            string       `json:"taxType" binding:"required"`
	ManualCessRate     types.Money  `json:"manualCessRate"`
	Discount           types.Money  `json:"discount"`
	Freight            types.Money  `json:"freight"`
	Packaging          types.Money  `json:"packaging"`
	OtherCharges       types.Money  `json:"otherCharges"`
	Notes              string       `json:"notes"`
	Lines              []LineCreate `json:"lines" binding:"required"`
}

// PurchaseUpdate replaces an unposted purchase's content.
type PurchaseUpdate struct {
	Date               *time.Time   `json:"date"`
	SupplierBillNumber string       `json:"supplierBillNumber"`
	SupplierBillDate   *time.Time   `json:"supplierBillDate"`
	TaxType            string       `json:"taxType" binding:"required"`
	ManualCessRate     types.Money  `json:"manualCessRate"`
	Discount           types.Money  `json:"discount"`
	Freight            types.Money  `json:"freight"`
	Packaging          types.Money  `json:"packaging"`
	OtherCharges       types.Money  `json:"otherCharges"`
	Notes              string       `json:"notes"`
	Lines              []LineCreate `json:"lines" binding:"required"`
	Version            int          `json:"version" binding:"required"`
}

// ReturnLineCreate identifies an original line by product and batch.
type ReturnLineCreate struct {
	ProductID string      `json:"productId" binding:"required"`
	BatchID   string      `json:"batchId"`
	Quantity  types.Money `json:"quantity" binding:"required"`
}

// ReturnCreate creates a credit or debit note against a document.
type ReturnCreate struct {
	DocumentID string             `json:"documentId" binding:"required"`
	Date       *time.Time         `json:"date"`
	Reason     string             `json:"reason"`
	Notes      string             `json:"notes"`
	Lines      []ReturnLineCreate `json:"lines" binding:"required"`
}

// ExpenseCreate records an operating expense.
type ExpenseCreate struct {
	Category      string      `json:"category" binding:"required"`
	Amount        types.Money `json:"amount" binding:"required"`
	Date          *time.Time  `json:"date"`
	Payee         string      `json:"payee"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes"`
}

// ExpenseUpdate modifies an unposted expense.
type ExpenseUpdate struct {
	Category      string      `json:"category" binding:"required"`
	Amount        types.Money `json:"amount" binding:"required"`
	Date          *time.Time  `json:"date"`
	Payee         string      `json:"payee"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes"`
	Version       int         `json:"version" binding:"required"`
}

// PaymentRequest applies a payment against an invoice or purchase.
type PaymentRequest struct {
	Amount    types.Money `json:"amount" binding:"required"`
	Method    string      `json:"method"`
	Reference string      `json:"reference"`
}
