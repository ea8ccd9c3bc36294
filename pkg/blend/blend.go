// Package blend implements the per-channel compositing rules used when a
// mark layer is laid over an existing image.
package blend

import "fmt"

// Mode selects a compositing rule.
type Mode uint8

// Modes.
const (
	Normal Mode = iota
	Multiply
	Screen
	Lighten
	Darken
	Overlay
)

var names = [...]string{
	Normal:   "normal",
	Multiply: "multiply",
	Screen:   "screen",
	Lighten:  "lighten",
	Darken:   "darken",
	Overlay:  "overlay",
}

// Func combines a base channel with a source channel.
type Func func(base, src uint8) uint8

var funcs = [...]Func{
	Normal:   func(_, s uint8) uint8 { return s },
	Multiply: func(b, s uint8) uint8 { return div255(int(b) * int(s)) },
	Screen:   func(b, s uint8) uint8 { return 255 - div255((255-int(b))*(255-int(s))) },
	Lighten:  func(b, s uint8) uint8 { return max(b, s) },
	Darken:   func(b, s uint8) uint8 { return min(b, s) },
	Overlay: func(b, s uint8) uint8 {
		if b < 128 {
			return div255(2 * int(b) * int(s))
		}
		return 255 - div255(2*(255-int(b))*(255-int(s)))
	},
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Func returns the channel function of m. Unknown modes behave as Normal.
func (m Mode) Func() Func {
	if int(m) < len(funcs) {
		return funcs[m]
	}
	return funcs[Normal]
}

// Channel composites src over base with the given opacity in [0,1].
func (m Mode) Channel(base, src uint8, alpha float64) uint8 {
	if alpha <= 0 {
		return base
	}
	v := m.Func()(base, src)
	if alpha >= 1 {
		return v
	}
	return uint8(float64(base) + (float64(v)-float64(base))*alpha + 0.5)
}

// Pixel composites the RGB color src onto the 4-byte pixel at pix[0:3].
func (m Mode) Pixel(pix []uint8, r, g, b uint8, alpha float64) {
	if alpha <= 0 {
		return
	}
	f := m.Func()
	if alpha >= 1 {
		pix[0], pix[1], pix[2] = f(pix[0], r), f(pix[1], g), f(pix[2], b)
		return
	}
	pix[0] = mix(pix[0], f(pix[0], r), alpha)
	pix[1] = mix(pix[1], f(pix[1], g), alpha)
	pix[2] = mix(pix[2], f(pix[2], b), alpha)
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for i, n := range names {
		if n == s {
			return Mode(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown blend mode %q", s)
}

func mix(base, v uint8, alpha float64) uint8 {
	return uint8(float64(base) + (float64(v)-float64(base))*alpha + 0.5)
}

// div255 divides by 255 with rounding, for products of two bytes.
func div255(x int) uint8 {
	return uint8((x + 127) / 255)
}
