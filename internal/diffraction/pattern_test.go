package diffraction

import (
	"errors"
	"math"
	"strings"
	"testing"

	"diffract/internal/core"
)

func mustLight(t *testing.T, wavelength, intensity float64) *LightSource {
	t.Helper()
	light, err := NewLightSource(core.Point{}, wavelength, intensity, 1)
	if err != nil {
		t.Fatalf("NewLightSource: %v", err)
	}
	return light
}

func TestCalculatePatternAllOrdersVisible(t *testing.T) {
	light := mustLight(t, 500e-9, 0.7)
	lens := NewLens(0.1, 0.01, 1.5, ShapeCircular)
	p := NewPattern(1.0, PatternMonochromatic)

	if err := p.Calculate(light, lens); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	spots := p.Spots()
	if len(spots) != 21 {
		t.Fatalf("expected 21 spots, got %d", len(spots))
	}
	for i, sp := range spots {
		m := MinOrder + i
		if sp.Order != m {
			t.Fatalf("spot %d has order %d, want %d", i, sp.Order, m)
		}
		want := math.Tan(math.Asin(float64(m) * 500e-9 / 0.01))
		if math.Abs(sp.Position-want) > 1e-15 {
			t.Fatalf("order %d position = %v, want %v", m, sp.Position, want)
		}
		if math.Abs(sp.Intensity-0.7) > 1e-12 {
			t.Fatalf("order %d intensity = %v, want 0.7", m, sp.Intensity)
		}
	}
	if spots[10].Position != 0 || spots[10].Angle != 0 {
		t.Fatalf("central maximum should sit on the axis, got %+v", spots[10])
	}
}

func TestCalculatePatternDropsUnrealizableOrders(t *testing.T) {
	light := mustLight(t, 450e-9, 1)
	lens := NewLens(0.1, 2e-6, 1.5, ShapeCircular)
	p := NewPattern(2.0, PatternMonochromatic)

	if err := p.Calculate(light, lens); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	spots := p.Spots()
	if len(spots) != 9 {
		t.Fatalf("expected orders -4..4 (9 spots), got %d", len(spots))
	}
	for i, sp := range spots {
		m := -4 + i
		if sp.Order != m {
			t.Fatalf("spot %d labelled order %d, want %d", i, sp.Order, m)
		}
		sinTheta := float64(m) * 450e-9 / 2e-6
		want := 2.0 * math.Tan(math.Asin(sinTheta))
		if math.Abs(sp.Position-want) > 1e-12 {
			t.Fatalf("order %d position = %v, want %v", m, sp.Position, want)
		}
		if sp.Order < 0 && sp.Position >= 0 || sp.Order > 0 && sp.Position <= 0 {
			t.Fatalf("order %d landed on the wrong side: %v", m, sp.Position)
		}
	}
}

func TestCalculatePatternReplacesSpots(t *testing.T) {
	light := mustLight(t, 500e-9, 1)
	lens := NewLens(0.1, 0.01, 1.5, ShapeCircular)
	p := NewPattern(1.0, "")
	if p.Type() != PatternMonochromatic {
		t.Fatalf("default pattern type = %q", p.Type())
	}

	for i := 0; i < 3; i++ {
		if err := p.Calculate(light, lens); err != nil {
			t.Fatalf("Calculate #%d: %v", i, err)
		}
	}
	if n := len(p.Spots()); n != 21 {
		t.Fatalf("repeated Calculate appended spots: %d", n)
	}

	p.SetScreenDistance(2.0)
	if p.Spots() != nil {
		t.Fatal("moving the screen must discard stale spots")
	}
}

func TestCalculatePatternRejectsDegenerateGeometry(t *testing.T) {
	light := mustLight(t, 500e-9, 1)

	if err := NewPattern(1.0, "").Calculate(light, NewLens(0.1, 0, 1.5, "")); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("zero aperture: expected ErrInvalidGeometry, got %v", err)
	}
	for _, d := range []float64{0, -1, math.Inf(1)} {
		p := NewPattern(d, "")
		if err := p.Calculate(light, NewLens(0.1, 0.01, 1.5, "")); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("screen distance %v: expected ErrInvalidGeometry, got %v", d, err)
		}
	}
	if err := NewPattern(1.0, "").Calculate(nil, NewLens(0.1, 0.01, 1.5, "")); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("nil light: expected ErrPreconditionNotMet, got %v", err)
	}
}

func TestCalculatePatternClearsSpotsOnFailure(t *testing.T) {
	light := mustLight(t, 500e-9, 1)
	p := NewPattern(1.0, "")
	if err := p.Calculate(light, NewLens(0.1, 0.01, 1.5, "")); err != nil {
		t.Fatal(err)
	}
	if err := p.Calculate(light, NewLens(0.1, 0, 1.5, "")); err == nil {
		t.Fatal("expected an error for a zero aperture")
	}
	if len(p.Spots()) != 0 {
		t.Fatal("failed Calculate left stale spots behind")
	}
}

func TestSpotsReturnsCopy(t *testing.T) {
	p := NewPattern(1.0, "")
	if err := p.Calculate(mustLight(t, 500e-9, 1), NewLens(0.1, 0.01, 1.5, "")); err != nil {
		t.Fatal(err)
	}
	spots := p.Display()
	spots[0].Intensity = 42
	if p.Spots()[0].Intensity == 42 {
		t.Fatal("Spots aliases internal state")
	}
}

func TestSpotCalculateIntensity(t *testing.T) {
	for order := -3; order <= 3; order++ {
		sp := Spot{Order: order}
		got := sp.CalculateIntensity(0.5)
		if math.Abs(got-0.5) > 1e-12 || sp.Intensity != got {
			t.Fatalf("order %d: CalculateIntensity = %v, stored %v", order, got, sp.Intensity)
		}
	}
	s := Spot{Order: 1, Position: 0.01, Angle: math.Pi / 6, Intensity: 0.5}.String()
	if !strings.Contains(s, "0.010000 m") || !strings.Contains(s, "0.523599 rad") {
		t.Fatalf("unexpected display %q", s)
	}
}

func TestParsePatternType(t *testing.T) {
	if kind, err := ParsePatternType("Multi-Slit"); err != nil || kind != PatternMultiSlit {
		t.Fatalf("ParsePatternType(Multi-Slit) = %q, %v", kind, err)
	}
	if _, err := ParsePatternType("polychromatic"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
