// Package colorscale turns numeric values into fill colors.
package colorscale

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrBadDomain = errors.New("domain must satisfy lo < hi")
	ErrBadColor  = errors.New("invalid hex color")
)

// Linear maps a closed numeric domain onto a two-color gradient. Values
// outside the domain are clamped to the nearest endpoint.
type Linear struct {
	lo, hi   float64
	from, to colorful.Color
	fromHex  string
	toHex    string
}

// NewLinear builds a scale over [lo, hi] from color `from` to color `to`.
func NewLinear(lo, hi float64, from, to string) (*Linear, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || !(lo < hi) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrBadDomain, lo, hi)
	}
	f, err := ParseHex(from)
	if err != nil {
		return nil, err
	}
	t, err := ParseHex(to)
	if err != nil {
		return nil, err
	}
	return &Linear{lo: lo, hi: hi, from: f, to: t, fromHex: from, toHex: to}, nil
}

// MustLinear is NewLinear for package-level defaults; it panics on bad input.
func MustLinear(lo, hi float64, from, to string) *Linear {
	l, err := NewLinear(lo, hi, from, to)
	if err != nil {
		panic(err)
	}
	return l
}

// Color returns the hex color for v. The endpoints come back exactly as they
// were configured; interior values are blended per RGB channel.
func (l *Linear) Color(v float64) string {
	if math.IsNaN(v) || v <= l.lo {
		return l.fromHex
	}
	if v >= l.hi {
		return l.toHex
	}
	t := (v - l.lo) / (l.hi - l.lo)
	return l.from.BlendRgb(l.to, t).Hex()
}

// Domain returns the configured input bounds.
func (l *Linear) Domain() (lo, hi float64) {
	return l.lo, l.hi
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return c, nil
}
