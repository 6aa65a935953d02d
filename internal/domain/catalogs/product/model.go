// Package product provides the Product catalog with per-batch stock.
// Products carry the HSN code and GST rate slab used by tax computation;
// batches track expiry and quantity for pharmacy stock control.
package product

import (
	"context"
	"regexp"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

var hsnRE = regexp.MustCompile(`^\d{4,8}$`)

// GST rate slabs permitted on products.
var rateSlabs = []string{"0", "5", "12", "18", "28"}

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// HSNCode is the 4-8 digit harmonized classification code
	HSNCode string `db:"hsn_code" json:"hsnCode"`

	// Description for the HSN summary report
	Description string `db:"description" json:"description,omitempty"`

	// GSTRate is the slab percentage (0, 5, 12, 18 or 28)
	GSTRate types.Money `db:"gst_rate" json:"gstRate"`

	// CessRate is the additional levy percentage (usually zero)
	CessRate types.Money `db:"cess_rate" json:"cessRate"`

	// UnitPrice is the default selling price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// UQC is the unit quantity code for statutory reports (e.g. "NOS", "BOX")
	UQC string `db:"uqc" json:"uqc,omitempty"`

	Manufacturer string `db:"manufacturer" json:"manufacturer,omitempty"`

	// PrescriptionRequired marks Schedule H/H1 drugs
	PrescriptionRequired bool `db:"prescription_required" json:"prescriptionRequired"`
}

// New creates a new Product.
func New(organizationID id.ID, name, hsnCode string, gstRate types.Money) *Product {
	return &Product{
		Catalog: entity.NewCatalog(organizationID, "", name),
		HSNCode: hsnCode,
		GSTRate: gstRate,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.HSNCode != "" && !hsnRE.MatchString(p.HSNCode) {
		return apperror.NewValidation("HSN code must be 4-8 digits").
			WithDetail("field", "hsnCode").
			WithDetail("value", p.HSNCode)
	}

	if !isValidSlab(p.GSTRate) {
		return apperror.NewValidation("GST rate must be one of the statutory slabs").
			WithDetail("field", "gstRate").
			WithDetail("value", p.GSTRate.String()).
			WithDetail("allowed", rateSlabs)
	}

	if p.CessRate.IsNegative() {
		return apperror.NewValidation("cess rate cannot be negative").
			WithDetail("field", "cessRate")
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	return nil
}

func isValidSlab(rate types.Money) bool {
	for _, s := range rateSlabs {
		if rate.Equal(types.MustMoney(s)) {
			return true
		}
	}
	return false
}

// Batch is a stock lot of a product with its own expiry and pricing.
type Batch struct {
	ID        id.ID `db:"id" json:"id"`
	ProductID id.ID `db:"product_id" json:"productId"`

	// BatchNumber is the manufacturer's lot number
	BatchNumber string `db:"batch_number" json:"batchNumber"`

	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	// MRP is the maximum retail price printed on the pack
	MRP types.Money `db:"mrp" json:"mrp"`

	// PurchasePrice is the landed cost per unit
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// Quantity is the units currently in stock
	Quantity types.Money `db:"quantity" json:"quantity"`
}

// NewBatch creates a stock batch for a product.
func NewBatch(productID id.ID, batchNumber string) *Batch {
	return &Batch{
		ID:          id.New(),
		ProductID:   productID,
		BatchNumber: batchNumber,
	}
}

// Validate checks batch invariants.
func (b *Batch) Validate(ctx context.Context) error {
	if id.IsNil(b.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if b.BatchNumber == "" {
		return apperror.NewValidation("batch number is required").
			WithDetail("field", "batchNumber")
	}
	if b.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	return nil
}

// IsExpired reports whether the batch is past its expiry date.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(now)
}
