// Package color converts normalized host colors into hexadecimal strings.
package color

import (
	"math"
	"strconv"

	"github.com/designlint/designlint/internal/domain"
)

// RGB is a color with 0..255 channels. Alpha is carried through unscaled.
type RGB struct {
	R, G, B int
	A       *float64
}

// Normalize scales r, g and b from 0..1 to 0..255, rounding half away from
// zero. Alpha passes through unchanged.
func Normalize(c domain.Color) RGB {
	return RGB{
		R: scale(c.R),
		G: scale(c.G),
		B: scale(c.B),
		A: c.A,
	}
}

func scale(v float64) int {
	return int(math.Round(v * 255))
}

// ToHex24 formats r, g, b as "#rrggbb". Out-of-range channels are not
// clamped and may produce more than two digits.
func ToHex24(r, g, b int) string {
	return "#" + channel(r) + channel(g) + channel(b)
}

// ToHex32 formats r, g, b and a 0..1 alpha as "#rrggbbaa".
func ToHex32(r, g, b int, a float64) string {
	return ToHex24(r, g, b) + channel(int(math.Floor(a*255+0.5)))
}

// Hex24 normalizes c and formats it as "#rrggbb".
func Hex24(c domain.Color) string {
	n := Normalize(c)
	return ToHex24(n.R, n.G, n.B)
}

func channel(v int) string {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
