package entity

import (
	"context"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Invoice, Purchase, SalesReturn, PurchaseReturn, Expense.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document. Report date-range
	// filters run against this field, not CreatedAt.
	Date time.Time `db:"date" json:"date"`

	// Posted indicates the document's stock movements are applied
	Posted bool `db:"posted" json:"posted"`

	// OrganizationID is the owning organization (multi-org scoping)
	OrganizationID id.ID `db:"organization_id" json:"organizationId"`

	// Notes is an optional user comment
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(organizationID id.ID) Document {
	return Document{
		BaseDocument:   NewBaseDocument(),
		Date:           time.Now().UTC(),
		OrganizationID: organizationID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.OrganizationID) {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// CanModify checks if document can be modified.
// Posted documents require unposting first.
func (d *Document) CanModify() error {
	if d.Posted {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Cannot modify posted document. Unpost first.",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkPosted sets the posted flag.
func (d *Document) MarkPosted() {
	d.Posted = true
	d.Touch()
}

// MarkUnposted clears the posted flag.
func (d *Document) MarkUnposted() {
	d.Posted = false
	d.Touch()
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// --- Accessors used by the posting engine ---

// GetID returns the document ID.
func (d *Document) GetID() id.ID { return d.ID }

// GetDate returns the document business date.
func (d *Document) GetDate() time.Time { return d.Date }

// GetOrganizationID returns the owning organization.
func (d *Document) GetOrganizationID() id.ID { return d.OrganizationID }

// IsPosted reports whether the document is posted.
func (d *Document) IsPosted() bool { return d.Posted }
