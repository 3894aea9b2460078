package diffraction

import (
	"fmt"
	"sort"
)

var presets = map[string]Config{}

// Register adds a named configuration preset. Empty names are ignored and a
// later registration replaces an earlier one.
func Register(name string, cfg Config) {
	if name == "" {
		return
	}
	presets[name] = cfg.Clone()
}

// Presets exposes a copy of the preset registry.
func Presets() map[string]Config {
	out := make(map[string]Config, len(presets))
	for name, cfg := range presets {
		out[name] = cfg.Clone()
	}
	return out
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named preset.
func Preset(name string) (Config, error) {
	cfg, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q", name)
	}
	return cfg.Clone(), nil
}

func init() {
	Register("default", DefaultConfig())

	hene := DefaultConfig()
	hene.LightSource.Wavelength = 632.8e-9
	hene.Simulation.ScreenDistance = 1.0
	Register("hene", hene)

	green := DefaultConfig()
	green.LightSource.Wavelength = 532e-9
	green.LightSource.Intensity = 0.8
	green.Lens.CurvatureRadius = 0.01
	Register("green-laser", green)

	// A 2 µm aperture at 450 nm only admits orders up to |m| = 4.
	narrow := DefaultConfig()
	narrow.LightSource.Wavelength = 450e-9
	narrow.Lens.CurvatureRadius = 2e-6
	narrow.Simulation.ScreenDistance = 1.0
	Register("narrow-aperture", narrow)
}
