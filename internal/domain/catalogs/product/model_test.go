package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

func TestValidate_RateSlab(t *testing.T) {
	ctx := context.Background()
	orgID := id.New()

	p := New(orgID, "Paracetamol 500mg", "3004", types.MustMoney("12"))
	require.NoError(t, p.Validate(ctx))

	p.GSTRate = types.MustMoney("15")
	assert.Error(t, p.Validate(ctx), "15 is not a statutory slab")

	p.GSTRate = types.MustMoney("0")
	assert.NoError(t, p.Validate(ctx))
}

func TestValidate_HSNCode(t *testing.T) {
	ctx := context.Background()
	orgID := id.New()

	for hsn, ok := range map[string]bool{
		"3004":      true,
		"30049099":  true,
		"300":       false,
		"300490991": false,
		"3OO4":      false,
	} {
		p := New(orgID, "Paracetamol 500mg", hsn, types.MustMoney("12"))
		err := p.Validate(ctx)
		if ok {
			assert.NoError(t, err, "hsn %q", hsn)
		} else {
			assert.Error(t, err, "hsn %q", hsn)
		}
	}
}

func TestBatchIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	b := NewBatch(id.New(), "LOT-001")
	assert.False(t, b.IsExpired(now), "no expiry date means never expired")

	past := now.AddDate(0, -1, 0)
	b.ExpiryDate = &past
	assert.True(t, b.IsExpired(now))

	future := now.AddDate(1, 0, 0)
	b.ExpiryDate = &future
	assert.False(t, b.IsExpired(now))
}

func TestBatchValidate(t *testing.T) {
	ctx := context.Background()

	b := NewBatch(id.New(), "LOT-001")
	b.Quantity = types.MustMoney("10")
	require.NoError(t, b.Validate(ctx))

	b.Quantity = types.MustMoney("-1")
	assert.Error(t, b.Validate(ctx))

	b = NewBatch(id.New(), "")
	assert.Error(t, b.Validate(ctx))
}
