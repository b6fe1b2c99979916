package formkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"24.99", 24.99, false},
		{" $1,250.50 ", 1250.50, false},
		{"€3", 3, false},
		{"0", 0, false},
		{"-4", 0, true},
		{"ten", 0, true},
		{"Inf", 0, true},
		{"-inf", 0, true},
		{"NaN", 0, true},
		{"1e400", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestAmountPtr(t *testing.T) {
	assert.Nil(t, AmountPtr(""))
	assert.Nil(t, AmountPtr("abc"))
	assert.Nil(t, AmountPtr("+Inf"))
	v := AmountPtr("12.5")
	require.NotNil(t, v)
	assert.Equal(t, 12.5, *v)
	assert.Equal(t, "12.5", FormatAmount(v))
	assert.Equal(t, "", FormatAmount(nil))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{"Min", "Joon", "Ara"}, SplitList(" Min, Joon ,,Ara "))
}

func TestParseShares(t *testing.T) {
	got, err := ParseShares("Ben 40, Mary Ann 20.50, Sam")
	require.NoError(t, err)
	assert.Equal(t, []Share{
		{Name: "Ben", Amount: 40},
		{Name: "Mary Ann", Amount: 20.5},
		{Name: "Sam"},
	}, got)

	got, err = ParseShares("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OptionalDate(""))
	assert.NoError(t, OptionalDate("2025-12-24"))
	assert.Error(t, OptionalDate("12/24/2025"))

	assert.NoError(t, Year("2025"))
	assert.Error(t, Year("25x"))

	assert.Error(t, Required("Name")("  "))
	assert.NoError(t, Required("Name")("Alice"))

	assert.Error(t, RequiredAmount("Price")(""))
	assert.NoError(t, RequiredAmount("Price")("9.99"))
	assert.NoError(t, OptionalAmount(""))
}

func TestSizes(t *testing.T) {
	assert.Equal(t, 40, Width(10))
	assert.Equal(t, 100, Width(300))
	assert.Equal(t, 10, Height(5))
}
