package render

import (
	"math"

	"diffract/internal/core"
	"diffract/internal/diffraction"
)

// Margin is the number of cells kept free around the drawing.
const Margin = 4

// Frame maps simulation coordinates onto a raster. The optical axis runs along
// the middle row from the light source at the left margin to the screen at the
// right margin. Spot displacements use their own vertical scale so the
// outermost order still lands inside the frame.
type Frame struct {
	Size      core.Size
	AxisRow   int
	ScreenCol int

	originX, originY float64
	scale            float64
	spotScale        float64
}

// NewFrame fits snap into a raster of the given size.
func NewFrame(snap diffraction.Snapshot, size core.Size) Frame {
	f := Frame{Size: size, AxisRow: size.H / 2}
	usable := size.W - 1 - 2*Margin
	if usable < 1 {
		usable = 1
	}
	f.ScreenCol = Margin + usable

	distance := 1.0
	if snap.ScreenDistance != nil && *snap.ScreenDistance > 0 && !math.IsInf(*snap.ScreenDistance, 0) {
		distance = *snap.ScreenDistance
	}
	f.scale = float64(usable) / distance
	if snap.LightSource != nil {
		f.originX = snap.LightSource.Position[0]
		f.originY = snap.LightSource.Position[1]
	}

	maxAbs := 0.0
	for _, sp := range snap.DiffractionPattern {
		if a := math.Abs(sp.Position); a > maxAbs && !math.IsInf(a, 0) {
			maxAbs = a
		}
	}
	if half := float64(size.H/2 - Margin); maxAbs > 0 && half > 0 {
		f.spotScale = half / maxAbs
	}
	return f
}

// Point converts a position in meters into raster coordinates.
func (f Frame) Point(x, y float64) (float64, float64) {
	col := float64(Margin) + (x-f.originX)*f.scale
	row := float64(f.AxisRow) - (y-f.originY)*f.scale
	return col, row
}

// SpotRow converts a screen displacement into a raster row.
func (f Frame) SpotRow(position float64) float64 {
	return float64(f.AxisRow) - position*f.spotScale
}
