package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteBreakdown(t *testing.T) {
	b, err := Quote(100, 3)
	require.NoError(t, err)

	assert.Equal(t, 300.0, b.Subtotal)
	assert.Equal(t, 30.0, b.Service)
	assert.Equal(t, 3.0, b.CityTax)
	assert.Equal(t, 33.0, b.Taxes)
	assert.Equal(t, 333.0, b.Total)
}

func TestQuoteTotalIsElevenPercentMarkup(t *testing.T) {
	cases := []struct {
		price float64
		qty   int
	}{
		{0, 1},
		{19.99, 2},
		{120.5, 7},
		{1, 15},
		{3333.33, 4},
	}
	for _, tc := range cases {
		b, err := Quote(tc.price, tc.qty)
		require.NoError(t, err)
		assert.InDelta(t, tc.price*float64(tc.qty)*1.11, b.Total, 1e-9)
		assert.InDelta(t, b.Service+b.CityTax, b.Taxes, 1e-12)
		assert.InDelta(t, b.Subtotal+b.Taxes, b.Total, 1e-12)
	}
}

func TestQuoteDeterministic(t *testing.T) {
	a, err := Quote(149.9, 5)
	require.NoError(t, err)
	b, err := Quote(149.9, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuoteRejectsBadInput(t *testing.T) {
	_, err := Quote(-1, 1)
	assert.Error(t, err)

	_, err = Quote(100, 0)
	assert.Error(t, err)
}
