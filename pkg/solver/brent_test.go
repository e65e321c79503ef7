package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent(t *testing.T) {
	tests := []struct {
		name   string
		f      func(float64) float64
		lo, hi float64
		want   float64
	}{
		{
			name: "linear",
			f:    func(x float64) float64 { return 2*x - 3 },
			lo:   0, hi: 10,
			want: 1.5,
		},
		{
			name: "cubic",
			f:    func(x float64) float64 { return x*x*x - 2*x - 5 },
			lo:   1, hi: 3,
			want: 2.0945514815423265,
		},
		{
			name: "transcendental",
			f:    func(x float64) float64 { return math.Cos(x) - x },
			lo:   0, hi: 2,
			want: 0.7390851332151607,
		},
		{
			name: "root at endpoint",
			f:    func(x float64) float64 { return x - 1 },
			lo:   1, hi: 2,
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Brent(tt.f, tt.lo, tt.hi)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, 0.0, tt.f(got), 1e-9)
		})
	}
}

func TestBrentNoBracket(t *testing.T) {
	_, err := Brent(func(x float64) float64 { return x*x + 1 }, -5, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBracket)
}
