//go:build ebiten

package render

import (
	"image/color"

	"diffract/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a ByteGrid to an offscreen image and draws it scaled.
type GridPainter struct {
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a w×h grid.
func NewGridPainter(w, h int, palette []color.RGBA) *GridPainter {
	return &GridPainter{
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: palette,
	}
}

// SetPalette replaces the colours used for cell levels.
func (p *GridPainter) SetPalette(palette []color.RGBA) {
	p.palette = palette
}

// Blit draws grid onto screen at the given integer scale.
func (p *GridPainter) Blit(screen *ebiten.Image, grid *core.ByteGrid, scale int) {
	if scale <= 0 {
		scale = 1
	}
	b := p.img.Bounds()
	if b.Dx() != grid.W || b.Dy() != grid.H {
		p.img = ebiten.NewImage(grid.W, grid.H)
	}
	p.buf = Pixels(grid, p.palette, p.buf)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
