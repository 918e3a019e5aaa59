package entity

import (
	"math"
	"testing"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStock(t *testing.T) {
	cases := []struct {
		name        string
		current     int
		delta       int
		mode        StockMode
		want        int
		wantClamped bool
	}{
		{name: "suma", current: 3, delta: 7, mode: StockModeRelative, want: 10},
		{name: "piso en cero", current: 10, delta: -20, mode: StockModeRelative, want: 0, wantClamped: true},
		{name: "absoluto", current: 10, delta: 4, mode: StockModeAbsolute, want: 4},
		{name: "absoluto negativo", current: 10, delta: -1, mode: StockModeAbsolute, want: 0, wantClamped: true},
		{name: "límite exacto", current: 1, delta: math.MaxInt - 1, mode: StockModeRelative, want: math.MaxInt},
		{name: "absoluto máximo", current: 5, delta: math.MaxInt, mode: StockModeAbsolute, want: math.MaxInt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, clamped, err := ApplyStock(tc.current, tc.delta, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantClamped, clamped)
		})
	}
}

func TestApplyStock_Overflow(t *testing.T) {
	got, clamped, err := ApplyStock(math.MaxInt-2, 3, StockModeRelative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, math.MaxInt-2, got)
	assert.False(t, clamped)
}
