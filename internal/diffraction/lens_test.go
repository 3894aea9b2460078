package diffraction

import (
	"errors"
	"math"
	"testing"

	"diffract/internal/core"
)

func TestFocalPointMatchesThinLensFormula(t *testing.T) {
	cases := []struct {
		radius, index float64
	}{
		{0.1, 1.5},
		{0.02, 1.5},
		{0.5, 1.33},
		{2.0, 2.4},
		{-0.1, 1.5},
	}
	for _, tc := range cases {
		lens := NewLens(0.05, tc.radius, tc.index, ShapeCircular)
		got, err := lens.FocalPoint()
		if err != nil {
			t.Fatalf("FocalPoint(R=%g, n=%g) returned error: %v", tc.radius, tc.index, err)
		}
		want := tc.radius / (tc.index - 1)
		if math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
			t.Fatalf("FocalPoint(R=%g, n=%g) = %v, want %v", tc.radius, tc.index, got, want)
		}
	}
}

func TestFocalPointRejectsUnphysicalLens(t *testing.T) {
	cases := []struct {
		name          string
		radius, index float64
	}{
		{"zero radius", 0, 1.5},
		{"index one", 0.1, 1},
		{"index below one", 0.1, 0.8},
		{"nan index", 0.1, math.NaN()},
	}
	for _, tc := range cases {
		lens := NewLens(0.05, tc.radius, tc.index, ShapeCircular)
		_, err := lens.FocalPoint()
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", tc.name, err)
		}
		// Identical input must produce the identical error.
		_, again := lens.FocalPoint()
		if again == nil || again.Error() != err.Error() {
			t.Fatalf("%s: repeated call returned %v, first call %v", tc.name, again, err)
		}
	}
}

func TestRefractReturnsFocalPoint(t *testing.T) {
	lens := NewLens(0.1, 0.2, 1.5, ShapeElliptical)
	light, err := NewLightSource(core.Point{}, 500e-9, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := lens.Refract(light)
	if err != nil {
		t.Fatalf("Refract returned error: %v", err)
	}
	if math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("Refract = %v, want 0.4", got)
	}
}

func TestLensProfileSnapshot(t *testing.T) {
	lens := NewLens(0.05, 0.1, 1.5, "")
	p := lens.Profile()
	want := LensProfile{FocalLength: 0.05, CurvatureRadius: 0.1, RefractiveIndex: 1.5, Shape: ShapeCircular}
	if p != want {
		t.Fatalf("Profile() = %+v, want %+v", p, want)
	}
	p.CurvatureRadius = 9
	if lens.CurvatureRadius() != 0.1 {
		t.Fatal("mutating the profile changed the lens")
	}
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]Shape{
		"":           ShapeCircular,
		"circular":   ShapeCircular,
		"Elliptical": ShapeElliptical,
		" custom ":   ShapeCustom,
	} {
		got, err := ParseShape(in)
		if err != nil || got != want {
			t.Fatalf("ParseShape(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseShape("hexagonal"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for unknown shape, got %v", err)
	}
}
