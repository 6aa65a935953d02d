package entity

import (
	"time"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// RecordType defines the direction of a register movement.
type RecordType string

const (
	RecordTypeReceipt RecordType = "receipt"
	RecordTypeIssue   RecordType = "issue"
)

// StockMovement is one row of the stock accumulation register.
// Recorder is the document that produced the movement; unposting a
// document removes its movements.
type StockMovement struct {
	ID id.ID `db:"id" json:"id"`

	// RecorderID is the posting document
	RecorderID   id.ID  `db:"recorder_id" json:"recorderId"`
	RecorderType string `db:"recorder_type" json:"recorderType"`

	Date       time.Time  `db:"date" json:"date"`
	RecordType RecordType `db:"record_type" json:"recordType"`

	OrganizationID id.ID `db:"organization_id" json:"organizationId"`
	ProductID      id.ID `db:"product_id" json:"productId"`

	// BatchID is nil-UUID when the product is not batch-tracked
	BatchID id.ID `db:"batch_id" json:"batchId,omitempty"`

	// Quantity is always positive; RecordType carries the sign
	Quantity types.Money `db:"quantity" json:"quantity"`
}

// NewStockMovement creates a movement row for a posting document.
func NewStockMovement(recorderID id.ID, recorderType string, date time.Time, recordType RecordType, organizationID, productID, batchID id.ID, quantity types.Money) StockMovement {
	return StockMovement{
		ID:             id.New(),
		RecorderID:     recorderID,
		RecorderType:   recorderType,
		Date:           date,
		RecordType:     recordType,
		OrganizationID: organizationID,
		ProductID:      productID,
		BatchID:        batchID,
		Quantity:       quantity,
	}
}

// SignedQuantity returns the quantity with the register sign applied.
func (m StockMovement) SignedQuantity() types.Money {
	if m.RecordType == RecordTypeIssue {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// StockBalance is the current on-hand quantity for a product/batch.
type StockBalance struct {
	OrganizationID id.ID       `db:"organization_id" json:"organizationId"`
	ProductID      id.ID       `db:"product_id" json:"productId"`
	BatchID        id.ID       `db:"batch_id" json:"batchId,omitempty"`
	Quantity       types.Money `db:"quantity" json:"quantity"`
}
