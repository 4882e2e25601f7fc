package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSmallestUnit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{name: "one ether", amount: "1", decimals: 18, want: "1000000000000000000"},
		{name: "fractional ether", amount: "0.05", decimals: 18, want: "50000000000000000"},
		{name: "one and a half sol", amount: "1.5", decimals: 9, want: "1500000000"},
		{name: "zero", amount: "0", decimals: 18, want: "0"},
		{name: "below smallest unit truncates", amount: "0.0000000001", decimals: 9, want: "0"},
		{name: "no decimals", amount: "42", decimals: 0, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toSmallestUnit(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToSmallestUnitRejectsInvalidInput(t *testing.T) {
	_, err := toSmallestUnit("not-a-number", 18)
	assert.Error(t, err)

	_, err = toSmallestUnit("", 18)
	assert.Error(t, err)

	_, err = toSmallestUnit("-1", 18)
	assert.Error(t, err)
}
