package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/gst"
)

func m(s string) types.Money { return types.MustMoney(s) }

func TestRecalculate_IntraState(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.AddLine(id.New(), id.New(), "3004", m("2"), m("100"), m("12"), m("0"), m("0"))

	require.NoError(t, inv.Recalculate())

	assert.True(t, inv.Subtotal.Equal(m("200")))
	assert.True(t, inv.TotalCGST.Equal(m("12")))
	assert.True(t, inv.TotalSGST.Equal(m("12")))
	assert.True(t, inv.TotalIGST.IsZero())
	assert.True(t, inv.GrandTotal.Equal(m("224")))
	assert.True(t, inv.RoundOff.IsZero())

	require.Len(t, inv.Lines, 1)
	assert.True(t, inv.Lines[0].TaxableValue.Equal(m("200")))
	assert.True(t, inv.Lines[0].Total.Equal(m("224")))
}

func TestRecalculate_RoundOff(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeIGST)
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("999.50"), m("18"), m("0"), m("0"))

	require.NoError(t, inv.Recalculate())

	assert.True(t, inv.TotalIGST.Equal(m("179.91")))
	assert.True(t, inv.GrandTotalRaw.Equal(m("1179.41")))
	assert.True(t, inv.GrandTotal.Equal(m("1179")))
	assert.True(t, inv.RoundOff.Equal(m("-0.41")))
	assert.True(t, inv.GrandTotal.Equal(inv.GrandTotalRaw.Add(inv.RoundOff)))
}

func TestRecalculate_CessMode(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeCESS)
	inv.ManualCessRate = m("1")
	inv.AddLine(id.New(), id.New(), "2106", m("1"), m("600"), m("18"), m("0"), m("0"))
	inv.AddLine(id.New(), id.New(), "2106", m("1"), m("400"), m("12"), m("0"), m("0"))

	require.NoError(t, inv.Recalculate())

	// Per-line GST is suppressed; cess levies once on the subtotal.
	assert.True(t, inv.TotalCGST.IsZero())
	assert.True(t, inv.TotalSGST.IsZero())
	assert.True(t, inv.TotalIGST.IsZero())
	assert.True(t, inv.TotalCess.Equal(m("10")))
	assert.True(t, inv.GrandTotal.Equal(m("1010")))
}

func TestRecalculate_DocumentDiscount(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.Discount = m("24")
	inv.AddLine(id.New(), id.New(), "3004", m("2"), m("100"), m("12"), m("0"), m("0"))

	require.NoError(t, inv.Recalculate())

	// The rebate comes off after tax; the split stays on the full value.
	assert.True(t, inv.TotalCGST.Equal(m("12")))
	assert.True(t, inv.TotalSGST.Equal(m("12")))
	assert.True(t, inv.GrandTotalRaw.Equal(m("200")))
	assert.True(t, inv.GrandTotal.Equal(m("200")))
	assert.True(t, inv.BalanceAmount.Equal(m("200")))
}

func TestValidate_NegativeDiscount(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.Discount = m("-5")
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("12"), m("0"), m("0"))

	err := inv.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRecalculate_DerivesPaymentState(t *testing.T) {
	inv := New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("500"), m("0"), m("0"), m("0"))

	require.NoError(t, inv.Recalculate())
	assert.Equal(t, gst.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.True(t, inv.BalanceAmount.Equal(m("500")))

	inv.PaidAmount = m("200")
	require.NoError(t, inv.Recalculate())
	assert.Equal(t, gst.PaymentStatusPartial, inv.PaymentStatus)
	assert.True(t, inv.BalanceAmount.Equal(m("300")))

	inv.PaidAmount = m("500")
	require.NoError(t, inv.Recalculate())
	assert.Equal(t, gst.PaymentStatusPaid, inv.PaymentStatus)
	assert.True(t, inv.BalanceAmount.IsZero())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	inv := New(id.New(), id.Nil(), gst.TaxTypeCGSTSGST)
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("12"), m("0"), m("0"))
	err := inv.Validate(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	inv = New(id.New(), id.New(), gst.TaxType("VAT"))
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("12"), m("0"), m("0"))
	require.Error(t, inv.Validate(ctx))

	inv = New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	err = inv.Validate(ctx)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeEmptyDocument, appErr.Code)

	inv = New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.AddLine(id.New(), id.New(), "3004", m("0"), m("100"), m("12"), m("0"), m("0"))
	require.Error(t, inv.Validate(ctx))

	inv = New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
	inv.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("12"), m("0"), m("0"))
	require.NoError(t, inv.Validate(ctx))
}

func TestGenerateMovements(t *testing.T) {
	orgID := id.New()
	productID := id.New()
	batchID := id.New()

	inv := New(orgID, id.New(), gst.TaxTypeCGSTSGST)
	inv.AddLine(productID, batchID, "3004", m("3"), m("100"), m("12"), m("0"), m("0"))

	movements, err := inv.GenerateMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, movements.Stock, 1)

	mv := movements.Stock[0]
	assert.Equal(t, entity.RecordTypeIssue, mv.RecordType)
	assert.Equal(t, inv.ID, mv.RecorderID)
	assert.Equal(t, orgID, mv.OrganizationID)
	assert.Equal(t, productID, mv.ProductID)
	assert.Equal(t, batchID, mv.BatchID)
	assert.True(t, mv.Quantity.Equal(m("3")))
	assert.True(t, mv.SignedQuantity().Equal(m("-3")))
}
