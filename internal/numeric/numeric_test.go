package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/lazywalk/internal/errs"
)

func TestInterpolate(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 10, 30}

	tests := []struct {
		x, want float64
	}{
		{0.5, 5},
		{1, 10},
		{2, 20},
		{-5, 0},  // clamped low
		{99, 30}, // clamped high
	}
	for _, tt := range tests {
		got, err := Interpolate(xs, ys, tt.x)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "x=%v", tt.x)
	}
}

func TestInterpolateInvalid(t *testing.T) {
	cases := map[string]func() error{
		"length mismatch": func() error { _, err := Interpolate([]float64{0, 1}, []float64{0}, 0); return err },
		"too short":       func() error { _, err := Interpolate([]float64{0}, []float64{0}, 0); return err },
		"unsorted":        func() error { _, err := Interpolate([]float64{1, 0}, []float64{0, 1}, 0); return err },
		"nan":             func() error { _, err := Interpolate([]float64{0, 1}, []float64{0, 1}, math.NaN()); return err },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(fn(), errs.ErrInvalidInput))
		})
	}
}

func TestTrapezoid(t *testing.T) {
	// y = 2x on [0, 4] -> 16, exact for a linear function.
	got, err := Trapezoid([]float64{0, 1, 2.5, 4}, []float64{0, 2, 5, 8})
	require.NoError(t, err)
	assert.InDelta(t, 16, got, 1e-12)

	_, err = Trapezoid([]float64{0, 0}, []float64{1, 1})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestSimpson(t *testing.T) {
	// Exact for cubics.
	got, err := Simpson(func(x float64) float64 { return x * x * x }, 0, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 4, got, 1e-12)

	got, err = Simpson(math.Sin, 0, math.Pi, 100)
	require.NoError(t, err)
	assert.InDelta(t, 2, got, 1e-6)

	_, err = Simpson(math.Sin, 0, 1, 3)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	_, err = Simpson(nil, 0, 1, 2)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestSI(t *testing.T) {
	v, prefix := ScaleSI(1500)
	assert.InDelta(t, 1.5, v, 1e-12)
	assert.Equal(t, "k", prefix)

	assert.Equal(t, "1 MB", FormatSI(1e6, "B"))

	parsed, unit, err := ParseSI("2.5 kHz")
	require.NoError(t, err)
	assert.InDelta(t, 2500, parsed, 1e-9)
	assert.Equal(t, "Hz", unit)

	_, _, err = ParseSI("not a number")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}
