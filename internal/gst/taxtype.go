// Package gst implements the GST tax computation engine: per-line and
// document-level tax breakdowns, payment transitions and return totals.
// Everything here is pure arithmetic over decimal values; persistence and
// transport stay in the calling layers.
package gst

import (
	"encoding/json"

	"pharmabill/internal/core/apperror"
)

// TaxType selects how a document's GST amount is split.
type TaxType string

const (
	// TaxTypeCGSTSGST splits GST into equal central and state halves
	// (intra-state transactions).
	TaxTypeCGSTSGST TaxType = "CGST_SGST"

	// TaxTypeIGST applies the full GST amount as integrated tax
	// (inter-state transactions).
	TaxTypeIGST TaxType = "IGST"

	// TaxTypeCESS applies a document-level cess on the aggregated subtotal
	// and suppresses per-item GST entirely.
	TaxTypeCESS TaxType = "CESS"
)

// Valid reports whether t is a known tax type.
func (t TaxType) Valid() bool {
	switch t {
	case TaxTypeCGSTSGST, TaxTypeIGST, TaxTypeCESS:
		return true
	}
	return false
}

// ParseTaxType converts a string into a TaxType, rejecting unknown values
// at construction time rather than at computation time.
func ParseTaxType(s string) (TaxType, error) {
	t := TaxType(s)
	if !t.Valid() {
		return "", apperror.NewValidation("unknown tax type").WithDetail("taxType", s)
	}
	return t, nil
}

// UnmarshalJSON enforces the closed set during request binding.
func (t *TaxType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTaxType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PaymentStatus tracks settlement of a document's grand total.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPartial, PaymentStatusUnpaid:
		return true
	}
	return false
}
