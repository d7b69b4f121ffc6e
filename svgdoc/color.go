package svgdoc

import (
	"image/color"
	"math"
)

// Color is a paint value, with components normalized to [0, 1].
// The alpha component is only meaningful when HasAlpha is true.
type Color struct {
	R, G, B  float64
	A        float64
	HasAlpha bool
}

var _ color.Color = Color{} // assert interface conformance

// RGB255 returns an opaque color from components in [0, 255].
func RGB255(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 } // false for NaN

// Valid returns true when all the components lie in [0, 1].
func (c Color) Valid() bool {
	if c.HasAlpha && !inUnit(c.A) {
		return false
	}
	return inUnit(c.R) && inUnit(c.G) && inUnit(c.B)
}

// Alpha returns the alpha component, 1 when not set.
func (c Color) Alpha() float64 {
	if c.HasAlpha {
		return c.A
	}
	return 1
}

// Blend mixes the color with white, using `opacity` as the weight
// of the color. The result is opaque: formats without transparency,
// like EPS, use it to render translucent paint on a white page.
func (c Color) Blend(opacity float64) Color {
	op := math.Max(0, math.Min(1, opacity*c.Alpha()))
	return Color{
		R: op*c.R + 1 - op,
		G: op*c.G + 1 - op,
		B: op*c.B + 1 - op,
	}
}

// RGBA implements color.Color, returning alpha-premultiplied values.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := c.Alpha()
	return scale16(c.R * alpha), scale16(c.G * alpha), scale16(c.B * alpha), scale16(alpha)
}

func scale16(v float64) uint32 {
	return uint32(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}
