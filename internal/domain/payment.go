package domain

import (
	"time"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// Payment is one settlement record against an invoice or purchase.
// The accumulated amounts live on the document; these rows are the
// settlement trail.
type Payment struct {
	ID             id.ID       `db:"id" json:"id"`
	OrganizationID id.ID       `db:"organization_id" json:"organizationId"`
	DocumentID     id.ID       `db:"document_id" json:"documentId"`
	DocumentType   string      `db:"document_type" json:"documentType"`
	Date           time.Time   `db:"date" json:"date"`
	Amount         types.Money `db:"amount" json:"amount"`
	Method         string      `db:"method" json:"method,omitempty"`
	Reference      string      `db:"reference" json:"reference,omitempty"`
	CreatedBy      string      `db:"created_by" json:"createdBy,omitempty"`
}

// NewPayment creates a payment record dated now.
func NewPayment(organizationID, documentID id.ID, documentType string, amount types.Money, method, reference string) *Payment {
	return &Payment{
		ID:             id.New(),
		OrganizationID: organizationID,
		DocumentID:     documentID,
		DocumentType:   documentType,
		Date:           time.Now().UTC(),
		Amount:         amount,
		Method:         method,
		Reference:      reference,
	}
}
