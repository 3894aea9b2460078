package render

import (
	"math"

	"diffract/internal/core"
	"diffract/internal/diffraction"
)

// Cell levels written by Rasterize. Higher levels win where features overlap.
const (
	AxisLevel      uint8 = 32
	ScreenLevel    uint8 = 48
	WavefrontLevel uint8 = 128
	SourceLevel    uint8 = 255
)

// Rasterize draws snap into grid: the optical axis, the screen, every
// wavefront path, the light source and one bright band per diffraction spot
// whose level follows the spot intensity.
func Rasterize(snap diffraction.Snapshot, grid *core.ByteGrid) {
	grid.Clear()
	if !snap.Configured() {
		return
	}
	f := NewFrame(snap, grid.Size())

	for x := Margin; x <= f.ScreenCol; x++ {
		grid.Max(x, f.AxisRow, AxisLevel)
	}
	for y := 0; y < grid.H; y++ {
		grid.Max(f.ScreenCol, y, ScreenLevel)
	}

	for _, path := range snap.Wavefronts {
		for _, p := range path {
			col, row := f.Point(p[0], p[1])
			grid.Max(round(col), round(row), WavefrontLevel)
		}
	}

	for _, sp := range snap.DiffractionPattern {
		level := spotLevel(sp.Intensity)
		if level == 0 {
			continue
		}
		row := round(f.SpotRow(sp.Position))
		for x := f.ScreenCol + 1; x < grid.W; x++ {
			grid.Max(x, row, level)
		}
	}

	col, row := f.Point(snap.LightSource.Position[0], snap.LightSource.Position[1])
	cx, cy := round(col), round(row)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			grid.Max(cx+dx, cy+dy, SourceLevel)
		}
	}
}

func spotLevel(intensity float64) uint8 {
	if !(intensity > 0) {
		return 0
	}
	if intensity >= 1 {
		return 255
	}
	return uint8(math.Round(intensity * 255))
}

func round(v float64) int {
	return int(math.Round(v))
}
