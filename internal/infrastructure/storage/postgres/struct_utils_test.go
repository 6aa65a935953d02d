package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/catalogs/product"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	// Embedded entity columns come first, own columns after.
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "hsn_code")
	assert.Contains(t, cols, "gst_rate")
	assert.Contains(t, cols, "deletion_mark")
	assert.NotContains(t, cols, "-")

	// Stable across calls (cache path).
	assert.Equal(t, cols, ExtractDBColumns[product.Product]())
}

func TestStructToMap(t *testing.T) {
	p := product.New(id.New(), "Paracetamol 500mg", "3004", types.MustMoney("12"))
	p.Code = "PRD-2026-00001"

	m := StructToMap(p)
	require.NotNil(t, m)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "PRD-2026-00001", m["code"])
	assert.Equal(t, "Paracetamol 500mg", m["name"])
	assert.Equal(t, "3004", m["hsn_code"])

	_, hasLines := m["-"]
	assert.False(t, hasLines)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("x"))
}
