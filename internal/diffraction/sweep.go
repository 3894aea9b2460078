package diffraction

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// SweepRecord captures the outcome of one configuration in a parameter sweep.
type SweepRecord struct {
	Key   string
	Value float64

	// Spots is the number of visible diffraction orders.
	Spots int
	// MaxPosition is the largest absolute screen displacement among the spots.
	MaxPosition float64
	// FocalPoint is NaN when the lens has no finite focal point.
	FocalPoint float64
	// PathPoints is the length of the propagated wavefront.
	PathPoints int

	Err error
}

// sweepable lists the numeric Apply keys a sweep may vary.
var sweepable = map[string]bool{
	"focal_length":     true,
	"curvature_radius": true,
	"aperture":         true,
	"refractive_index": true,
	"x":                true,
	"y":                true,
	"wavelength":       true,
	"wavelength_nm":    true,
	"intensity":        true,
	"coherence":        true,
	"screen_distance":  true,
	"step_size":        true,
}

// SweepValues returns n evenly spaced values from start to end inclusive.
func SweepValues(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// Sweep evaluates base once per value, overriding key through Apply, on up to
// workers goroutines. Records are returned in the order of values; a record
// whose run failed carries the error instead of results.
func Sweep(base Config, key string, values []float64, workers int) ([]SweepRecord, error) {
	if !sweepable[key] {
		return nil, fmt.Errorf("%w: unknown sweep key %q", ErrInvalidParameter, key)
	}
	if workers <= 0 {
		workers = 1
	}

	records := make([]SweepRecord, len(values))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, value := range values {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v float64) {
			defer wg.Done()
			cfg := Apply(base, map[string]string{key: strconv.FormatFloat(v, 'g', -1, 64)})
			records[i] = evaluateSweep(cfg, key, v)
			<-sem
		}(idx, value)
	}

	wg.Wait()
	return records, nil
}

func evaluateSweep(cfg Config, key string, value float64) SweepRecord {
	rec := SweepRecord{Key: key, Value: value, FocalPoint: math.NaN()}
	sim := New()
	if err := sim.ConfigureFromConfig(cfg); err != nil {
		rec.Err = err
		return rec
	}
	if err := sim.Start(); err != nil {
		rec.Err = err
		return rec
	}
	spots := sim.Pattern().Spots()
	rec.Spots = len(spots)
	for _, sp := range spots {
		rec.MaxPosition = math.Max(rec.MaxPosition, math.Abs(sp.Position))
	}
	if f, err := sim.Lens().FocalPoint(); err == nil {
		rec.FocalPoint = f
	}
	for _, w := range sim.Wavefronts() {
		rec.PathPoints += w.Len()
	}
	return rec
}
