package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

func originalLine(productID id.ID, qty, returned, price, gstRate, discount string) OriginalLine {
	return OriginalLine{
		ProductID:        productID,
		Quantity:         types.MustMoney(qty),
		ReturnedQuantity: types.MustMoney(returned),
		UnitPrice:        types.MustMoney(price),
		GSTRate:          types.MustMoney(gstRate),
		Discount:         types.MustMoney(discount),
	}
}

func TestComputeReturn_WithinReturnable(t *testing.T) {
	productID := id.New()
	original := []OriginalLine{originalLine(productID, "10", "3", "100", "12", "0")}

	totals, items, err := ComputeReturn(original, TaxTypeCGSTSGST, types.Zero(),
		[]ReturnLine{{ProductID: productID, Quantity: types.MustMoney("7")}}, "sales_return")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(types.MustMoney("100")), "returns keep original pricing")
	assert.True(t, totals.Subtotal.Equal(types.MustMoney("700")))
	assert.True(t, totals.TotalCGST.Equal(types.MustMoney("42")))
	assert.True(t, totals.TotalSGST.Equal(types.MustMoney("42")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("784")))
}

func TestComputeReturn_ExceedsReturnable(t *testing.T) {
	productID := id.New()
	original := []OriginalLine{originalLine(productID, "10", "3", "100", "12", "0")}

	_, _, err := ComputeReturn(original, TaxTypeCGSTSGST, types.Zero(),
		[]ReturnLine{{ProductID: productID, Quantity: types.MustMoney("8")}}, "sales_return")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeExceedsReturnable))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "7", appErr.Details["returnable"])
}

func TestComputeReturn_ProratesDiscount(t *testing.T) {
	productID := id.New()
	// 10 units, line discount 20; returning 5 carries half the discount.
	original := []OriginalLine{originalLine(productID, "10", "0", "50", "5", "20")}

	totals, items, err := ComputeReturn(original, TaxTypeCGSTSGST, types.Zero(),
		[]ReturnLine{{ProductID: productID, Quantity: types.MustMoney("5")}}, "sales_return")
	require.NoError(t, err)

	assert.True(t, items[0].Discount.Equal(types.MustMoney("10")))
	assert.True(t, totals.Subtotal.Equal(types.MustMoney("240")))
}

func TestComputeReturn_UsesOriginalTaxMode(t *testing.T) {
	productID := id.New()
	original := []OriginalLine{originalLine(productID, "4", "0", "250", "18", "0")}

	totals, _, err := ComputeReturn(original, TaxTypeCESS, types.MustMoney("1"),
		[]ReturnLine{{ProductID: productID, Quantity: types.MustMoney("4")}}, "purchase_return")
	require.NoError(t, err)

	assert.True(t, totals.TotalCGST.IsZero())
	assert.True(t, totals.TotalCess.Equal(types.MustMoney("10")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("1010")))
}

func TestComputeReturn_UnknownProduct(t *testing.T) {
	original := []OriginalLine{originalLine(id.New(), "10", "0", "100", "12", "0")}

	_, _, err := ComputeReturn(original, TaxTypeCGSTSGST, types.Zero(),
		[]ReturnLine{{ProductID: id.New(), Quantity: types.MustMoney("1")}}, "sales_return")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestComputeReturn_BatchMatching(t *testing.T) {
	productID := id.New()
	batchA, batchB := id.New(), id.New()
	original := []OriginalLine{
		{ProductID: productID, BatchID: batchA, Quantity: types.MustMoney("5"), UnitPrice: types.MustMoney("100"), GSTRate: types.MustMoney("12")},
		{ProductID: productID, BatchID: batchB, Quantity: types.MustMoney("2"), UnitPrice: types.MustMoney("110"), GSTRate: types.MustMoney("12")},
	}

	_, items, err := ComputeReturn(original, TaxTypeCGSTSGST, types.Zero(),
		[]ReturnLine{{ProductID: productID, BatchID: batchB, Quantity: types.MustMoney("2")}}, "sales_return")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, batchB, items[0].BatchID)
	assert.True(t, items[0].UnitPrice.Equal(types.MustMoney("110")))
}

func TestComputeReturn_EmptyRequest(t *testing.T) {
	_, _, err := ComputeReturn(nil, TaxTypeCGSTSGST, types.Zero(), nil, "sales_return")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeEmptyDocument))
}
