package render

import (
	"image/color"
	"math"

	"diffract/internal/core"
)

// Background is the colour of an empty cell.
var Background = color.RGBA{R: 8, G: 8, B: 12, A: 255}

// WavelengthColor approximates the perceived colour of monochromatic light.
// Wavelengths outside 380-780 nm render as neutral gray.
func WavelengthColor(nm float64) color.RGBA {
	var r, g, b float64
	switch {
	case nm >= 380 && nm < 440:
		r, b = (440-nm)/(440-380), 1
	case nm >= 440 && nm < 490:
		g, b = (nm-440)/(490-440), 1
	case nm >= 490 && nm < 510:
		g, b = 1, (510-nm)/(510-490)
	case nm >= 510 && nm < 580:
		r, g = (nm-510)/(580-510), 1
	case nm >= 580 && nm < 645:
		r, g = 1, (645-nm)/(645-580)
	case nm >= 645 && nm <= 780:
		r = 1
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}

	// Fade towards the edges of the visible range.
	fade := 1.0
	switch {
	case nm > 700:
		fade = 0.3 + 0.7*(780-nm)/(780-700)
	case nm < 420:
		fade = 0.3 + 0.7*(nm-380)/(420-380)
	}
	return color.RGBA{R: component(r * fade), G: component(g * fade), B: component(b * fade), A: 255}
}

// Palette returns 256 colours ramping from Background through tint at
// WavefrontLevel to white at full level.
func Palette(tint color.RGBA) []color.RGBA {
	palette := make([]color.RGBA, 256)
	knee := float64(WavefrontLevel)
	for i := range palette {
		t := float64(i)
		if t <= knee {
			palette[i] = lerpRGBA(Background, tint, t/knee)
			continue
		}
		palette[i] = lerpRGBA(tint, color.RGBA{R: 255, G: 255, B: 255, A: 255}, (t-knee)/(255-knee))
	}
	return palette
}

// Pixels converts grid into RGBA bytes using palette, reusing buf when it is
// large enough.
func Pixels(grid *core.ByteGrid, palette []color.RGBA, buf []byte) []byte {
	n := 4 * len(grid.Cells())
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	fillPaletteRGBA(buf, grid.Cells(), palette)
	return buf
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func component(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
