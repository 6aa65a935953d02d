package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/id"
)

var testOrg = id.MustParse("01936b2e-1111-7000-8000-000000000001")

func TestValidate_GSTIN(t *testing.T) {
	ctx := context.Background()

	c := New(testOrg, "City Hospital Pharmacy")
	c.Code = "CUS00001"
	c.GSTIN = "27AABCU9603R1ZM"
	require.NoError(t, c.Validate(ctx))

	c.GSTIN = "not-a-gstin"
	assert.Error(t, c.Validate(ctx))
}

func TestValidate_StateCodeMustMatchGSTIN(t *testing.T) {
	ctx := context.Background()

	c := New(testOrg, "City Hospital Pharmacy")
	c.Code = "CUS00001"
	c.GSTIN = "27AABCU9603R1ZM"
	c.StateCode = "29"
	assert.Error(t, c.Validate(ctx))

	c.StateCode = "27"
	assert.NoError(t, c.Validate(ctx))
}

func TestValidate_Email(t *testing.T) {
	ctx := context.Background()

	c := New(testOrg, "Walk-in Customer")
	c.Code = "CUS00002"
	c.Email = "invalid"
	assert.Error(t, c.Validate(ctx))

	c.Email = "buyer@example.in"
	assert.NoError(t, c.Validate(ctx))
}

func TestIsRegistered(t *testing.T) {
	registered := New(testOrg, "City Hospital Pharmacy")
	registered.GSTIN = "27AABCU9603R1ZM"
	assert.True(t, registered.IsRegistered())

	walkIn := New(testOrg, "Walk-in Customer")
	assert.False(t, walkIn.IsRegistered())
}

func TestEffectiveStateCode(t *testing.T) {
	c := New(testOrg, "City Hospital Pharmacy")
	c.GSTIN = "27AABCU9603R1ZM"
	c.StateCode = "29" // stale manual entry loses to the GSTIN prefix
	assert.Equal(t, "27", c.EffectiveStateCode())

	walkIn := New(testOrg, "Walk-in Customer")
	walkIn.StateCode = "29"
	assert.Equal(t, "29", walkIn.EffectiveStateCode())
}
