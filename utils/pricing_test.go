package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	require.Equal(t, 20.0, DiscountedPrice(20, 0))
	require.Equal(t, 20.0, DiscountedPrice(20, -5))
	require.InDelta(t, 18.0, DiscountedPrice(20, 10), 1e-9)
	require.InDelta(t, 0.0, DiscountedPrice(20, 100), 1e-9)
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "$0.00", FormatPrice(0))
	require.Equal(t, "$5.99", FormatPrice(5.99))
	require.Equal(t, "$1,299.99", FormatPrice(1299.99))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 4.32, Round2(4.3200000001))
	require.Equal(t, 64.31, Round2(64.30999999))
	require.Equal(t, 2.35, Round2(2.346))
}

func TestRatingStars(t *testing.T) {
	cases := []struct {
		rating            float64
		full, half, empty int
	}{
		{0, 0, 0, 5},
		{3.2, 3, 0, 2},
		{4.5, 4, 1, 0},
		{4.69, 4, 1, 0},
		{5, 5, 0, 0},
		{6.3, 5, 0, 0},
	}
	for _, tc := range cases {
		full, half, empty := RatingStars(tc.rating)
		require.Equal(t, tc.full, full, "rating %v", tc.rating)
		require.Equal(t, tc.half, half, "rating %v", tc.rating)
		require.Equal(t, tc.empty, empty, "rating %v", tc.rating)
	}
}
