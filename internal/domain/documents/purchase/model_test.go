package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/gst"
)

func m(s string) types.Money { return types.MustMoney(s) }

func TestAdditionalCharges_SumsComponents(t *testing.T) {
	p := New(id.New(), id.New(), gst.TaxTypeIGST)
	p.Freight = m("120")
	p.Packaging = m("30")
	p.OtherCharges = m("7.50")

	assert.True(t, p.AdditionalCharges().Equal(m("157.50")))
}

func TestRecalculate_ChargesAndDiscount(t *testing.T) {
	p := New(id.New(), id.New(), gst.TaxTypeIGST)
	p.Freight = m("40")
	p.Packaging = m("10")
	p.Discount = m("18")
	p.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("18"), m("0"), m("0"))

	require.NoError(t, p.Recalculate())

	// Charges add after tax, the rebate subtracts after tax; the split
	// itself is untouched.
	assert.True(t, p.TotalIGST.Equal(m("18")))
	assert.True(t, p.GrandTotalRaw.Equal(m("150")))
	assert.True(t, p.GrandTotal.Equal(m("150")))
}

func TestValidate_NegativeAmounts(t *testing.T) {
	ctx := context.Background()

	fields := []struct {
		name string
		set  func(*Purchase)
	}{
		{"discount", func(p *Purchase) { p.Discount = m("-1") }},
		{"freight", func(p *Purchase) { p.Freight = m("-1") }},
		{"packaging", func(p *Purchase) { p.Packaging = m("-1") }},
		{"otherCharges", func(p *Purchase) { p.OtherCharges = m("-1") }},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			p := New(id.New(), id.New(), gst.TaxTypeCGSTSGST)
			p.AddLine(id.New(), id.New(), "3004", m("1"), m("100"), m("12"), m("0"), m("0"))
			f.set(p)

			err := p.Validate(ctx)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}
