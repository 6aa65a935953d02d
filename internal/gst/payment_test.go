package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/types"
)

func TestApplyPayment_FullSettlement(t *testing.T) {
	state := NewPaymentState(types.MustMoney("500"))
	assert.Equal(t, PaymentStatusUnpaid, state.Status)
	assert.True(t, state.BalanceAmount.Equal(types.MustMoney("500")))

	state, err := ApplyPayment(state, types.MustMoney("500"))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, state.Status)
	assert.True(t, state.BalanceAmount.IsZero())

	// No further payments once settled.
	_, err = ApplyPayment(state, types.MustMoney("1"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPayment))
}

func TestApplyPayment_PartialThenFull(t *testing.T) {
	state := NewPaymentState(types.MustMoney("1000"))

	state, err := ApplyPayment(state, types.MustMoney("300"))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPartial, state.Status)
	assert.True(t, state.PaidAmount.Equal(types.MustMoney("300")))
	assert.True(t, state.BalanceAmount.Equal(types.MustMoney("700")))

	state, err = ApplyPayment(state, types.MustMoney("700"))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, state.Status)
}

func TestApplyPayment_RejectsInvalidAmounts(t *testing.T) {
	state := NewPaymentState(types.MustMoney("100"))

	for _, amount := range []string{"-10", "100.01"} {
		_, err := ApplyPayment(state, types.MustMoney(amount))
		require.Error(t, err, "amount %s", amount)
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPayment))
	}
}

func TestApplyPayment_ZeroIsNoOp(t *testing.T) {
	state := NewPaymentState(types.MustMoney("100"))

	next, err := ApplyPayment(state, types.Zero())
	require.NoError(t, err)
	assert.Equal(t, state, next)

	// Zero stays valid on a settled document.
	settled, err := ApplyPayment(state, types.MustMoney("100"))
	require.NoError(t, err)
	next, err = ApplyPayment(settled, types.Zero())
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, next.Status)
}

func TestApplyPayment_Monotonic(t *testing.T) {
	state := NewPaymentState(types.MustMoney("250"))
	installments := []string{"50", "25", "100", "75"}
	prevPaid := types.Zero()
	prevBalance := state.BalanceAmount

	for _, inst := range installments {
		next, err := ApplyPayment(state, types.MustMoney(inst))
		require.NoError(t, err)

		assert.True(t, next.PaidAmount.GreaterThan(prevPaid))
		assert.True(t, next.BalanceAmount.LessThan(prevBalance))

		prevPaid = next.PaidAmount
		prevBalance = next.BalanceAmount
		state = next
	}

	assert.Equal(t, PaymentStatusPaid, state.Status)
}

func TestRestorePaymentState(t *testing.T) {
	state := RestorePaymentState(types.MustMoney("1179"), types.MustMoney("1000"))
	assert.Equal(t, PaymentStatusPartial, state.Status)
	assert.True(t, state.BalanceAmount.Equal(types.MustMoney("179")))
}

func TestNewPaymentState_ZeroTotalIsPaid(t *testing.T) {
	state := NewPaymentState(types.Zero())
	assert.Equal(t, PaymentStatusPaid, state.Status)
}
