package diffraction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"diffract/internal/core"

	"gopkg.in/yaml.v3"
)

// LensConfig describes a lens in a configuration document.
type LensConfig struct {
	FocalLength     float64 `json:"focal_length" yaml:"focal_length"`
	CurvatureRadius float64 `json:"curvature_radius" yaml:"curvature_radius"`
	RefractiveIndex float64 `json:"refractive_index" yaml:"refractive_index"`
	Shape           string  `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// LightConfig describes a light source in a configuration document.
type LightConfig struct {
	Position   []float64 `json:"position" yaml:"position"`
	Wavelength float64   `json:"wavelength" yaml:"wavelength"`
	Intensity  float64   `json:"intensity" yaml:"intensity"`
	Coherence  float64   `json:"coherence" yaml:"coherence"`
}

// SimConfig holds the screen geometry and solver settings.
type SimConfig struct {
	ScreenDistance float64 `json:"screen_distance" yaml:"screen_distance"`
	PatternType    string  `json:"pattern_type,omitempty" yaml:"pattern_type,omitempty"`
	// StepSize is the wavefront step in meters; zero selects DefaultStepSize.
	StepSize float64 `json:"step_size,omitempty" yaml:"step_size,omitempty"`
}

// Config is the complete description of a simulation run. Its document form
// has lens, light_source, simulation and advanced sections.
type Config struct {
	Lens        LensConfig       `json:"lens" yaml:"lens"`
	LightSource LightConfig      `json:"light_source" yaml:"light_source"`
	Simulation  SimConfig        `json:"simulation" yaml:"simulation"`
	Advanced    AdvancedSettings `json:"advanced" yaml:"advanced"`
}

// DefaultConfig returns a 550 nm source in front of a 2 cm lens with the
// screen half a meter away.
func DefaultConfig() Config {
	return Config{
		Lens: LensConfig{
			FocalLength:     0.1,
			CurvatureRadius: 0.02,
			RefractiveIndex: 1.5,
			Shape:           string(ShapeCircular),
		},
		LightSource: LightConfig{
			Position:   []float64{0, 0},
			Wavelength: 550e-9,
			Intensity:  1.0,
			Coherence:  1.0,
		},
		Simulation: SimConfig{
			ScreenDistance: 0.5,
			PatternType:    string(PatternMonochromatic),
			StepSize:       DefaultStepSize,
		},
		Advanced: DefaultAdvancedSettings(),
	}
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	c.LightSource.Position = append([]float64(nil), c.LightSource.Position...)
	return c
}

// DecodeConfig parses a YAML or JSON configuration document. Fields missing
// from the document keep their DefaultConfig values.
func DecodeConfig(data []byte) (Config, error) {
	return DecodeConfigOver(DefaultConfig(), data)
}

// DecodeConfigOver parses a YAML or JSON document on top of base. Fields
// missing from the document keep their base values.
func DecodeConfigOver(base Config, data []byte) (Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// EncodeConfig renders cfg as a YAML document.
func EncodeConfig(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return Apply(DefaultConfig(), cfg)
}

// Apply overrides fields of base with the recognised keys of kv. Values that
// do not parse are ignored.
func Apply(base Config, kv map[string]string) Config {
	c := base.Clone()
	if kv == nil {
		return c
	}
	if len(c.LightSource.Position) != 2 {
		c.LightSource.Position = []float64{0, 0}
	}
	floatKey := func(key string, dst *float64) {
		if v, ok := kv[key]; ok {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				*dst = parsed
			}
		}
	}
	floatKey("focal_length", &c.Lens.FocalLength)
	floatKey("curvature_radius", &c.Lens.CurvatureRadius)
	floatKey("aperture", &c.Lens.CurvatureRadius)
	floatKey("refractive_index", &c.Lens.RefractiveIndex)
	if v, ok := kv["shape"]; ok {
		if shape, err := ParseShape(v); err == nil {
			c.Lens.Shape = string(shape)
		}
	}
	floatKey("x", &c.LightSource.Position[0])
	floatKey("y", &c.LightSource.Position[1])
	floatKey("wavelength", &c.LightSource.Wavelength)
	if v, ok := kv["wavelength_nm"]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.LightSource.Wavelength = parsed * 1e-9
		}
	}
	floatKey("intensity", &c.LightSource.Intensity)
	floatKey("coherence", &c.LightSource.Coherence)
	floatKey("screen_distance", &c.Simulation.ScreenDistance)
	floatKey("step_size", &c.Simulation.StepSize)
	if v, ok := kv["pattern_type"]; ok {
		if kind, err := ParsePatternType(v); err == nil {
			c.Simulation.PatternType = string(kind)
		}
	}
	if v, ok := kv["multi_slit"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Advanced.MultiSlitEnabled = parsed
		}
	}
	floatKey("slit_spacing", &c.Advanced.SlitSpacing)
	if v, ok := kv["num_slits"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Advanced.NumSlits = parsed
		}
	}
	if v, ok := kv["coherence_enabled"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Advanced.CoherenceEnabled = parsed
		}
	}
	floatKey("phase_shift", &c.Advanced.PhaseShift)
	return c
}

// ValidationError collects every problem found in a Config.
type ValidationError struct {
	Issues []error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid config: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return "config validation errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual issues to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error { return e.Issues }

// Add records an issue.
func (e *ValidationError) Add(err error) { e.Issues = append(e.Issues, err) }

// HasIssues reports whether any issue was recorded.
func (e *ValidationError) HasIssues() bool { return len(e.Issues) > 0 }

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	verr := &ValidationError{}
	field := func(sentinel error, name string, v float64) {
		verr.Add(&ParameterError{Op: "validate config", Field: name, Value: v, Err: sentinel})
	}

	if c.Lens.CurvatureRadius == 0 || !finite(c.Lens.CurvatureRadius) {
		field(ErrInvalidGeometry, "lens.curvature_radius", c.Lens.CurvatureRadius)
	}
	if !(c.Lens.RefractiveIndex > 0) || !finite(c.Lens.RefractiveIndex) {
		field(ErrInvalidParameter, "lens.refractive_index", c.Lens.RefractiveIndex)
	}
	if _, err := ParseShape(c.Lens.Shape); err != nil {
		verr.Add(err)
	}

	if len(c.LightSource.Position) != 2 {
		verr.Add(fmt.Errorf("%w: light_source.position needs 2 coordinates, got %d",
			ErrInvalidParameter, len(c.LightSource.Position)))
	}
	if !validWavelength(c.LightSource.Wavelength) {
		field(ErrInvalidParameter, "light_source.wavelength", c.LightSource.Wavelength)
	}
	if !unitInterval(c.LightSource.Intensity) {
		field(ErrInvalidParameter, "light_source.intensity", c.LightSource.Intensity)
	}
	if !unitInterval(c.LightSource.Coherence) {
		field(ErrInvalidParameter, "light_source.coherence", c.LightSource.Coherence)
	}

	if !(c.Simulation.ScreenDistance > 0) || !finite(c.Simulation.ScreenDistance) {
		field(ErrInvalidGeometry, "simulation.screen_distance", c.Simulation.ScreenDistance)
	}
	if _, err := ParsePatternType(c.Simulation.PatternType); err != nil {
		verr.Add(err)
	}
	if c.Simulation.StepSize < 0 || !finite(c.Simulation.StepSize) {
		field(ErrInvalidParameter, "simulation.step_size", c.Simulation.StepSize)
	}

	if c.Advanced.MultiSlitEnabled {
		if !(c.Advanced.SlitSpacing > 0) {
			field(ErrInvalidParameter, "advanced.slit_spacing", c.Advanced.SlitSpacing)
		}
		if c.Advanced.NumSlits < 1 {
			field(ErrInvalidParameter, "advanced.num_slits", float64(c.Advanced.NumSlits))
		}
	}

	if verr.HasIssues() {
		return verr
	}
	return nil
}

// Build validates the config and constructs its lens and light source.
func (c Config) Build() (*Lens, *LightSource, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	shape, err := ParseShape(c.Lens.Shape)
	if err != nil {
		return nil, nil, err
	}
	lens := NewLens(c.Lens.FocalLength, c.Lens.CurvatureRadius, c.Lens.RefractiveIndex, shape)
	pos := core.Point{X: c.LightSource.Position[0], Y: c.LightSource.Position[1]}
	light, err := NewLightSource(pos, c.LightSource.Wavelength, c.LightSource.Intensity, c.LightSource.Coherence)
	if err != nil {
		return nil, nil, err
	}
	return lens, light, nil
}

// IsValidationError reports whether err came from Config.Validate.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
