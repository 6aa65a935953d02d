// Package expense provides the Expense document for operating costs
// (rent, salaries, utilities). Expenses carry no GST breakdown and do
// not move stock; they feed the profit view only.
package expense

import (
	"context"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// Category classifies an expense.
type Category string

const (
	CategoryRent      Category = "rent"
	CategorySalary    Category = "salary"
	CategoryUtilities Category = "utilities"
	CategoryTransport Category = "transport"
	CategoryOther     Category = "other"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryRent, CategorySalary, CategoryUtilities, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

// Expense represents an operating cost entry.
type Expense struct {
	entity.Document

	Category Category `db:"category" json:"category"`

	// Payee is a free-form recipient name
	Payee string `db:"payee" json:"payee,omitempty"`

	Amount types.Money `db:"amount" json:"amount"`

	// PaymentMethod: "cash", "bank", "upi", "card"
	PaymentMethod string `db:"payment_method" json:"paymentMethod,omitempty"`
}

// New creates a new Expense.
func New(organizationID id.ID, category Category, amount types.Money) *Expense {
	return &Expense{
		Document: entity.NewDocument(organizationID),
		Category: category,
		Amount:   amount,
	}
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if !e.Category.Valid() {
		return apperror.NewValidation("unknown expense category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}

	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}
