package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRupee(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1179.41", "1179"},
		{"1179.50", "1180"},
		{"1179.49", "1179"},
		{"-1179.50", "-1180"},
		{"-1179.49", "-1179"},
		{"0", "0"},
	}

	for _, tt := range tests {
		got := RoundRupee(MustMoney(tt.in))
		assert.True(t, got.Equal(MustMoney(tt.want)), "RoundRupee(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestNewMoneyFromString(t *testing.T) {
	v, err := NewMoneyFromString("123.45")
	require.NoError(t, err)
	assert.True(t, v.Equal(MustMoney("123.45")))

	_, err = NewMoneyFromString("twelve")
	assert.Error(t, err)
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"123456.78", "1,23,456.78"},
		{"12345678.9", "1,23,45,678.90"},
		{"-123456.78", "-1,23,456.78"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(MustMoney(tt.in)), "FormatINR(%s)", tt.in)
	}
}
