package gst

import (
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/types"
)

// PaymentState is the settlement position of a document.
// BalanceAmount is always GrandTotal - PaidAmount and the status is
// derived, never stored independently.
type PaymentState struct {
	GrandTotal    types.Money   `json:"grandTotal"`
	PaidAmount    types.Money   `json:"paidAmount"`
	BalanceAmount types.Money   `json:"balanceAmount"`
	Status        PaymentStatus `json:"status"`
}

// NewPaymentState returns the unpaid state for a freshly computed document.
func NewPaymentState(grandTotal types.Money) PaymentState {
	return derivePaymentState(grandTotal, types.Zero())
}

// RestorePaymentState rebuilds a state from persisted amounts,
// re-deriving balance and status.
func RestorePaymentState(grandTotal, paid types.Money) PaymentState {
	return derivePaymentState(grandTotal, paid)
}

func derivePaymentState(grandTotal, paid types.Money) PaymentState {
	balance := grandTotal.Sub(paid)

	var status PaymentStatus
	switch {
	case grandTotal.IsZero() || paid.GreaterThanOrEqual(grandTotal):
		status = PaymentStatusPaid
	case paid.IsPositive():
		status = PaymentStatusPartial
	default:
		status = PaymentStatusUnpaid
	}

	return PaymentState{
		GrandTotal:    grandTotal,
		PaidAmount:    paid,
		BalanceAmount: balance,
		Status:        status,
	}
}

// ApplyPayment records a payment against the state and returns the new
// state. The amount must not be negative and must not exceed the
// outstanding balance; zero is a valid no-op. A fully paid document
// accepts no further positive payments.
func ApplyPayment(state PaymentState, amount types.Money) (PaymentState, error) {
	if amount.IsNegative() {
		return PaymentState{}, apperror.NewInvalidPayment("payment amount cannot be negative").
			WithDetail("amount", amount.String())
	}
	if amount.IsZero() {
		return state, nil
	}
	if state.Status == PaymentStatusPaid {
		return PaymentState{}, apperror.NewInvalidPayment("document is already fully paid").
			WithDetail("grand_total", state.GrandTotal.String())
	}
	if amount.GreaterThan(state.BalanceAmount) {
		return PaymentState{}, apperror.NewInvalidPayment("payment exceeds outstanding balance").
			WithDetail("amount", amount.String()).
			WithDetail("balance", state.BalanceAmount.String())
	}

	return derivePaymentState(state.GrandTotal, state.PaidAmount.Add(amount)), nil
}
