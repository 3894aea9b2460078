package diffraction

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDefaultConfigBuilds(t *testing.T) {
	lens, light, err := DefaultConfig().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if lens.CurvatureRadius() != 0.02 || lens.Shape() != ShapeCircular {
		t.Fatalf("unexpected lens %+v", lens.Profile())
	}
	if light.Wavelength() != 550e-9 || light.Intensity() != 1 {
		t.Fatalf("unexpected light %+v", light.Propagate())
	}
}

func TestDecodeConfigJSON(t *testing.T) {
	doc := []byte(`{
  "lens": {"focal_length": 0.05, "curvature_radius": 0.1, "refractive_index": 1.5},
  "light_source": {"position": [0.0, 0.0], "wavelength": 5e-7, "intensity": 1.0, "coherence": 1.0},
  "simulation": {"screen_distance": 1.0}
}`)
	cfg, err := DecodeConfig(doc)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Lens.FocalLength != 0.05 || cfg.Lens.CurvatureRadius != 0.1 {
		t.Fatalf("lens not decoded: %+v", cfg.Lens)
	}
	if cfg.LightSource.Wavelength != 5e-7 || cfg.Simulation.ScreenDistance != 1.0 {
		t.Fatalf("light or screen not decoded: %+v %+v", cfg.LightSource, cfg.Simulation)
	}
	// Omitted fields keep their defaults.
	if cfg.Lens.Shape != "circular" || cfg.Simulation.StepSize != DefaultStepSize {
		t.Fatalf("defaults lost: shape=%q step=%v", cfg.Lens.Shape, cfg.Simulation.StepSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDecodeConfigYAML(t *testing.T) {
	doc := []byte(`
lens:
  curvature_radius: 2.0e-6
  shape: elliptical
light_source:
  wavelength: 4.5e-7
  position: [0.1, -0.2]
simulation:
  screen_distance: 2
  pattern_type: multi-slit
advanced:
  multi_slit_enabled: true
  num_slits: 3
`)
	cfg, err := DecodeConfig(doc)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	want := DefaultConfig()
	want.Lens.CurvatureRadius = 2e-6
	want.Lens.Shape = "elliptical"
	want.LightSource.Wavelength = 4.5e-7
	want.LightSource.Position = []float64{0.1, -0.2}
	want.Simulation.ScreenDistance = 2
	want.Simulation.PatternType = "multi-slit"
	want.Advanced.MultiSlitEnabled = true
	want.Advanced.NumSlits = 3
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("decoded %+v\nwant    %+v", cfg, want)
	}

	if _, err := DecodeConfig([]byte("lens: [unterminated")); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestEncodeConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LightSource.Wavelength = 632.8e-9
	data, err := EncodeConfig(cfg)
	if err != nil {
		t.Fatalf("EncodeConfig: %v", err)
	}
	back, err := DecodeConfig(data)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, back) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", cfg, back)
	}
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lens.CurvatureRadius = 0
	cfg.LightSource.Intensity = 3
	cfg.LightSource.Position = []float64{1}
	cfg.Simulation.ScreenDistance = -1
	cfg.Simulation.PatternType = "holographic"

	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if len(verr.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %d: %v", len(verr.Issues), verr)
	}
	if !errors.Is(err, ErrInvalidGeometry) || !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("issues do not unwrap to both sentinels: %v", err)
	}
	var perr *ParameterError
	if !errors.As(err, &perr) || perr.Field != "lens.curvature_radius" {
		t.Fatalf("first parameter error = %+v", perr)
	}
}

func TestValidateAdvancedOnlyWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Advanced.NumSlits = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled multi-slit settings should not be checked: %v", err)
	}
	cfg.Advanced.MultiSlitEnabled = true
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	base := DefaultConfig()
	cfg := Apply(base, map[string]string{
		"wavelength_nm":   "632.8",
		"aperture":        "0.005",
		"x":               "0.25",
		"screen_distance": "1.5",
		"shape":           "custom",
		"multi_slit":      "true",
		"num_slits":       "4",
		"intensity":       "not-a-number",
		"pattern_type":    "unknown",
	})
	if math.Abs(cfg.LightSource.Wavelength-632.8e-9) > 1e-18 {
		t.Fatalf("wavelength = %v", cfg.LightSource.Wavelength)
	}
	if cfg.Lens.CurvatureRadius != 0.005 || cfg.Lens.Shape != "custom" {
		t.Fatalf("lens = %+v", cfg.Lens)
	}
	if cfg.LightSource.Position[0] != 0.25 || cfg.Simulation.ScreenDistance != 1.5 {
		t.Fatalf("position=%v screen=%v", cfg.LightSource.Position, cfg.Simulation.ScreenDistance)
	}
	if !cfg.Advanced.MultiSlitEnabled || cfg.Advanced.NumSlits != 4 {
		t.Fatalf("advanced = %+v", cfg.Advanced)
	}
	// Unparseable values are ignored.
	if cfg.LightSource.Intensity != 1 || cfg.Simulation.PatternType != "monochromatic" {
		t.Fatalf("invalid overrides applied: intensity=%v type=%q", cfg.LightSource.Intensity, cfg.Simulation.PatternType)
	}
	if base.LightSource.Position[0] != 0 {
		t.Fatal("Apply mutated the base config")
	}
}

func TestFromMapStartsFromDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{"coherence": "0.5"})
	want := DefaultConfig()
	want.LightSource.Coherence = 0.5
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("FromMap = %+v, want %+v", cfg, want)
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := PresetNames()
	if len(names) < 4 || names[0] != "default" {
		t.Fatalf("unexpected presets %v", names)
	}
	for _, name := range names {
		cfg, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		sim := New()
		if err := sim.ConfigureFromConfig(cfg); err != nil {
			t.Fatalf("preset %q does not configure: %v", name, err)
		}
		if err := sim.Start(); err != nil {
			t.Fatalf("preset %q does not run: %v", name, err)
		}
	}
	if _, err := Preset("missing"); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
}

func TestNarrowAperturePreset(t *testing.T) {
	cfg, err := Preset("narrow-aperture")
	if err != nil {
		t.Fatal(err)
	}
	sim := New()
	if err := sim.ConfigureFromConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	if n := len(sim.Pattern().Spots()); n != 9 {
		t.Fatalf("narrow aperture produced %d spots, want 9", n)
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	cfg, err := Preset("default")
	if err != nil {
		t.Fatal(err)
	}
	cfg.LightSource.Position[0] = 7
	again, _ := Preset("default")
	if again.LightSource.Position[0] != 0 {
		t.Fatal("Preset aliases the registry")
	}
}
