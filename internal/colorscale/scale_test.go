package colorscale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearEndpoints(t *testing.T) {
	l, err := NewLinear(0, 1.5, "#e6f2ff", "#0066cc")
	require.NoError(t, err)

	assert.Equal(t, "#e6f2ff", l.Color(0))
	assert.Equal(t, "#0066cc", l.Color(1.5))
}

func TestLinearKeepsConfiguredSpelling(t *testing.T) {
	l := MustLinear(0, 1, "#E6F3FF", "#90CDF4")
	assert.Equal(t, "#E6F3FF", l.Color(0))
	assert.Equal(t, "#90CDF4", l.Color(1))
}

func TestLinearClamps(t *testing.T) {
	l := MustLinear(0, 1, "#000000", "#ffffff")

	assert.Equal(t, "#000000", l.Color(-3))
	assert.Equal(t, "#ffffff", l.Color(42))
	assert.Equal(t, "#000000", l.Color(math.NaN()))
	assert.Equal(t, "#ffffff", l.Color(math.Inf(1)))
}

func TestLinearInterpolates(t *testing.T) {
	l := MustLinear(0, 1, "#000000", "#ffffff")
	assert.Equal(t, "#808080", l.Color(0.5))

	shifted := MustLinear(10, 20, "#000000", "#ff0000")
	assert.Equal(t, "#800000", shifted.Color(15))
}

func TestLinearDeterministic(t *testing.T) {
	l := MustLinear(0, 1.5, "#e6f2ff", "#0066cc")
	for _, v := range []float64{0.1, 0.7, 1.1, 1.49} {
		assert.Equal(t, l.Color(v), l.Color(v))
	}
}

func TestNewLinearRejectsBadInput(t *testing.T) {
	_, err := NewLinear(1, 1, "#000000", "#ffffff")
	require.ErrorIs(t, err, ErrBadDomain)

	_, err = NewLinear(2, 1, "#000000", "#ffffff")
	require.ErrorIs(t, err, ErrBadDomain)

	_, err = NewLinear(0, 1, "blue", "#ffffff")
	require.ErrorIs(t, err, ErrBadColor)

	assert.Panics(t, func() { MustLinear(0, 1, "#000000", "nope") })
}

func TestParseHexShortForm(t *testing.T) {
	c, err := ParseHex("#fff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", c.Hex())
}

func TestPalette(t *testing.T) {
	p, err := NewPalette(5, "#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8")
	require.NoError(t, err)

	assert.Equal(t, "#FF6B6B", p.At(0))
	assert.Equal(t, "#98D8C8", p.At(4))
	assert.Empty(t, p.At(5))
	assert.Empty(t, p.At(-1))

	_, err = NewPalette(5, "#FF6B6B")
	require.Error(t, err)

	_, err = NewPalette(1, "red")
	require.ErrorIs(t, err, ErrBadColor)
}
