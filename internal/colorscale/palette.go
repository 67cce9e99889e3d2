package colorscale

import "fmt"

// Palette is a fixed, ordered list of slot colors. Slot i always gets
// color i, whatever occupies it.
type Palette []string

// NewPalette validates every color and requires exactly size entries.
func NewPalette(size int, colors ...string) (Palette, error) {
	if len(colors) != size {
		return nil, fmt.Errorf("palette needs %d colors, got %d", size, len(colors))
	}
	for _, c := range colors {
		if _, err := ParseHex(c); err != nil {
			return nil, err
		}
	}
	p := make(Palette, len(colors))
	copy(p, colors)
	return p, nil
}

// At returns the color for slot i, or "" when i is out of range.
func (p Palette) At(i int) string {
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}
