// Package colorutil provides shared color utilities for the sketch anchor application.
package colorutil

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Part colors for the three rig solids. Hues are spread across the wheel so
// the parts read clearly against each other in the preview overlay and in
// the placed object.
var (
	HeadColor = FromHSV(16, 0.85, 0.95)  // warm orange
	BodyColor = FromHSV(205, 0.80, 0.90) // sky blue
	LegsColor = FromHSV(130, 0.70, 0.80) // leaf green
)

// FromHSV builds an opaque RGBA color from hue (degrees), saturation and
// value in [0,1].
func FromHSV(h, s, v float64) color.RGBA {
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Dim returns the color with its value scaled down, keeping hue and
// saturation. Used for reticle and unfocused overlay states.
func Dim(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	in := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := in.Hsv()
	r, g, b := colorful.Hsv(h, s, v*factor).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}
