//go:build ebiten

package ui

import (
	"image/color"
	"math"
	"strconv"

	"diffract/internal/diffraction"
	"diffract/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// dashPeriod is the number of path segments per full phase cycle.
const dashPeriod = 8

// Overlay draws vector decorations on top of the rasterized view: wavefront
// paths as dashes whose brightness follows the wave phase, and order labels
// next to each diffraction spot.
type Overlay struct {
	scale      int
	showWaves  bool
	showOrders bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance for the given view scale.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale, showWaves: true, showOrders: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 for wavefronts, 2 for order labels.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showWaves = !o.showWaves
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showOrders = !o.showOrders
	}
}

// Draw renders the overlay for snap using the raster frame the view was
// drawn with. phase is the current wave phase in radians.
func (o *Overlay) Draw(screen *ebiten.Image, snap diffraction.Snapshot, frame render.Frame, phase float64) {
	if !snap.Configured() {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}
	if o.showWaves {
		for _, path := range snap.Wavefronts {
			o.drawWavefront(screen, path, frame, scale, phase)
		}
	}
	if o.showOrders {
		o.drawOrders(screen, snap.DiffractionPattern, frame, scale)
	}
}

func (o *Overlay) drawWavefront(screen *ebiten.Image, path [][2]float64, frame render.Frame, scale, phase float64) {
	for i := 1; i < len(path); i++ {
		x1, y1 := frame.Point(path[i-1][0], path[i-1][1])
		x2, y2 := frame.Point(path[i][0], path[i][1])
		t := 0.5 + 0.5*math.Cos(phase-2*math.Pi*float64(i)/dashPeriod)
		o.drawLine(screen, (x1+0.5)*scale, (y1+0.5)*scale, (x2+0.5)*scale, (y2+0.5)*scale, scale*0.6, interpolateColor(t))
	}
	if n := len(path); n > 0 {
		x, y := frame.Point(path[n-1][0], path[n-1][1])
		o.drawPoint(screen, (x+0.5)*scale, (y+0.5)*scale, scale*1.5, interpolateColor(1))
	}
}

func (o *Overlay) drawOrders(screen *ebiten.Image, spots []diffraction.Spot, frame render.Frame, scale float64) {
	face := basicfont.Face7x13
	lastRow := math.Inf(-1)
	for i := len(spots) - 1; i >= 0; i-- {
		sp := spots[i]
		row := (frame.SpotRow(sp.Position) + 0.5) * scale
		// Skip labels that would overlap the one above.
		if row-lastRow < float64(face.Height) {
			continue
		}
		lastRow = row
		label := strconv.Itoa(sp.Order)
		bounds := text.BoundString(face, label)
		x := int(float64(frame.ScreenCol)*scale) - bounds.Dx() - 4
		text.Draw(screen, label, face, x, int(row)+bounds.Dy()/2, color.RGBA{R: 200, G: 200, B: 210, A: 220})
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 170*t))
	g := uint8(math.Round(120 + 130*t))
	b := uint8(math.Round(200 + 55*t))
	a := uint8(math.Round(60 + 180*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
