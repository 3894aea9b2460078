package diffraction

// Default advanced option values.
const (
	DefaultSlitSpacing = 0.001
	DefaultNumSlits    = 2
)

// AdvancedOptions carries multi-slit, coherence and phase-shift settings.
// The solver does not consult them: only single-aperture monochromatic maxima
// are modelled. They are kept so configurations round-trip and exports
// describe what the user asked for.
type AdvancedOptions struct {
	settings AdvancedSettings
}

// AdvancedSettings is the plain value form of AdvancedOptions.
type AdvancedSettings struct {
	MultiSlitEnabled bool    `json:"multi_slit_enabled" yaml:"multi_slit_enabled"`
	SlitSpacing      float64 `json:"slit_spacing" yaml:"slit_spacing"`
	NumSlits         int     `json:"num_slits" yaml:"num_slits"`
	CoherenceEnabled bool    `json:"coherence_enabled" yaml:"coherence_enabled"`
	PhaseShift       float64 `json:"phase_shift" yaml:"phase_shift"`
}

// DefaultAdvancedSettings returns multi-slit and coherence disabled.
func DefaultAdvancedSettings() AdvancedSettings {
	return AdvancedSettings{SlitSpacing: DefaultSlitSpacing, NumSlits: DefaultNumSlits}
}

// NewAdvancedOptions returns options holding the default settings.
func NewAdvancedOptions() AdvancedOptions {
	return AdvancedOptions{settings: DefaultAdvancedSettings()}
}

// AdvancedOptionsFrom wraps previously captured settings.
func AdvancedOptionsFrom(s AdvancedSettings) AdvancedOptions {
	return AdvancedOptions{settings: s}
}

// EnableMultiSlit toggles multi-slit mode. Nil spacing or slit count keep the
// current values.
func (o *AdvancedOptions) EnableMultiSlit(enabled bool, spacing *float64, slits *int) {
	o.settings.MultiSlitEnabled = enabled
	if spacing != nil {
		o.settings.SlitSpacing = *spacing
	}
	if slits != nil {
		o.settings.NumSlits = *slits
	}
}

// EnableCoherence toggles coherent-source mode.
func (o *AdvancedOptions) EnableCoherence(enabled bool) {
	o.settings.CoherenceEnabled = enabled
}

// SetPhaseShift records the initial phase shift in radians.
func (o *AdvancedOptions) SetPhaseShift(phase float64) {
	o.settings.PhaseShift = phase
}

// Settings returns the current values.
func (o AdvancedOptions) Settings() AdvancedSettings {
	return o.settings
}
