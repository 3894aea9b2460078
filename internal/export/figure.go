package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"diffract/internal/diffraction"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Figure size used by Image.
const (
	FigureWidth  = 6 * vg.Inch
	FigureHeight = 4 * vg.Inch
)

// Figure plots spot intensity against screen position.
func Figure(snap diffraction.Snapshot) (*plot.Plot, error) {
	if len(snap.DiffractionPattern) == 0 {
		return nil, ErrEmptyPattern
	}
	pts := make(plotter.XYs, len(snap.DiffractionPattern))
	for i, sp := range snap.DiffractionPattern {
		pts[i] = plotter.XY{X: sp.Position, Y: sp.Intensity}
	}

	p := plot.New()
	p.Title.Text = "Diffraction pattern"
	if snap.LightSource != nil && snap.ScreenDistance != nil {
		p.Title.Text = fmt.Sprintf("Diffraction pattern (λ = %.1f nm, L = %g m)",
			snap.LightSource.Wavelength*1e9, *snap.ScreenDistance)
	}
	p.X.Label.Text = "Screen position (m)"
	p.Y.Label.Text = "Intensity"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "maxima", pts); err != nil {
		return nil, fmt.Errorf("plot spots: %w", err)
	}
	return p, nil
}

// Image renders Figure to a .png or .svg file.
func Image(path string, snap diffraction.Snapshot) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg":
	default:
		return fmt.Errorf("%w: image %q must be .png or .svg", ErrUnsupportedFormat, path)
	}
	p, err := Figure(snap)
	if err != nil {
		return err
	}
	if err := p.Save(FigureWidth, FigureHeight, path); err != nil {
		return fmt.Errorf("save figure %s: %w", path, err)
	}
	return nil
}
