package diffraction

import "diffract/internal/core"

// LightSource is a point emitter. Coherence is recorded but unused by the solver.
type LightSource struct {
	position   core.Point
	wavelength float64
	intensity  float64
	coherence  float64
}

// LightState is a value snapshot of a light source.
type LightState struct {
	Position   [2]float64 `json:"position" yaml:"position"`
	Wavelength float64    `json:"wavelength" yaml:"wavelength"`
	Intensity  float64    `json:"intensity" yaml:"intensity"`
	Coherence  float64    `json:"coherence" yaml:"coherence"`
}

// NewLightSource validates the emitter parameters and returns a light source.
func NewLightSource(position core.Point, wavelength, intensity, coherence float64) (*LightSource, error) {
	if !validWavelength(wavelength) {
		return nil, invalidParam("new light source", "wavelength", wavelength)
	}
	if !unitInterval(intensity) {
		return nil, invalidParam("new light source", "intensity", intensity)
	}
	if !unitInterval(coherence) {
		return nil, invalidParam("new light source", "coherence", coherence)
	}
	return &LightSource{
		position:   position,
		wavelength: wavelength,
		intensity:  intensity,
		coherence:  coherence,
	}, nil
}

// Position returns the emitter location in meters.
func (s *LightSource) Position() core.Point { return s.position }

// Wavelength returns the wavelength in meters.
func (s *LightSource) Wavelength() float64 { return s.wavelength }

// Intensity returns the relative intensity in [0, 1].
func (s *LightSource) Intensity() float64 { return s.intensity }

// Coherence returns the degree of coherence in [0, 1].
func (s *LightSource) Coherence() float64 { return s.coherence }

// Clone returns an independent copy; a nil source clones to nil.
func (s *LightSource) Clone() *LightSource {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// SetPosition moves the emitter. Any coordinates are accepted.
func (s *LightSource) SetPosition(x, y float64) {
	s.position = core.Point{X: x, Y: y}
}

// SetWavelength updates the wavelength; non-positive values are rejected.
func (s *LightSource) SetWavelength(wavelength float64) error {
	if !validWavelength(wavelength) {
		return invalidParam("set wavelength", "wavelength", wavelength)
	}
	s.wavelength = wavelength
	return nil
}

// SetIntensity updates the intensity; values outside [0, 1] are rejected.
func (s *LightSource) SetIntensity(intensity float64) error {
	if !unitInterval(intensity) {
		return invalidParam("set intensity", "intensity", intensity)
	}
	s.intensity = intensity
	return nil
}

// Propagate returns the current emitter state. Wave propagation itself is
// performed by Wavefront.
func (s *LightSource) Propagate() LightState {
	return LightState{
		Position:   s.position.Tuple(),
		Wavelength: s.wavelength,
		Intensity:  s.intensity,
		Coherence:  s.coherence,
	}
}

func validWavelength(v float64) bool {
	return v > 0 && finite(v)
}

// unitInterval is false for NaN.
func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
