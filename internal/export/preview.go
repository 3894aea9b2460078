package export

import (
	"fmt"
	"math"

	"diffract/internal/diffraction"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Stats summarises the spots of a snapshot.
type Stats struct {
	Spots          int
	TotalIntensity float64
	PeakIntensity  float64
	MinPosition    float64
	MaxPosition    float64
	PathPoints     int
}

// Span is the distance between the outermost spots.
func (s Stats) Span() float64 { return s.MaxPosition - s.MinPosition }

// Summary computes Stats for snap. A snapshot without spots yields zeroes.
func Summary(snap diffraction.Snapshot) Stats {
	var st Stats
	for _, path := range snap.Wavefronts {
		st.PathPoints += len(path)
	}
	st.Spots = len(snap.DiffractionPattern)
	if st.Spots == 0 {
		return st
	}
	positions, intensities := columns(snap.DiffractionPattern)
	st.TotalIntensity = floats.Sum(intensities)
	st.PeakIntensity = floats.Max(intensities)
	st.MinPosition = floats.Min(positions)
	st.MaxPosition = floats.Max(positions)
	return st
}

// Preview renders the intensity profile across the screen as an ASCII chart
// of the given size. Spots are binned by position into width columns.
func Preview(snap diffraction.Snapshot, width, height int) string {
	if len(snap.DiffractionPattern) == 0 {
		return "(no diffraction spots)"
	}
	if width < 2 {
		width = 2
	}
	if height < 1 {
		height = 1
	}
	positions, intensities := columns(snap.DiffractionPattern)
	lo, hi := floats.Min(positions), floats.Max(positions)

	profile := make([]float64, width)
	for i, x := range positions {
		col := width / 2
		if hi > lo {
			col = int(math.Round((x - lo) / (hi - lo) * float64(width-1)))
		}
		profile[col] += intensities[i]
	}

	caption := fmt.Sprintf("%d orders, %.3g m to %.3g m", len(positions), lo, hi)
	return asciigraph.Plot(profile,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

func columns(spots []diffraction.Spot) (positions, intensities []float64) {
	positions = make([]float64, len(spots))
	intensities = make([]float64, len(spots))
	for i, sp := range spots {
		positions[i] = sp.Position
		intensities[i] = sp.Intensity
	}
	return positions, intensities
}
