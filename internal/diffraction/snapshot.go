package diffraction

// Snapshot is a detached copy of the simulation state for renderers and
// exporters. Unset components are nil; it never aliases live state.
// Wavefront points are [x, y] pairs in meters.
type Snapshot struct {
	RunID              string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	State              string           `json:"state" yaml:"state"`
	LensProfile        *LensProfile     `json:"lens_profile" yaml:"lens_profile"`
	LightSource        *LightState      `json:"light_source" yaml:"light_source"`
	ScreenDistance     *float64         `json:"screen_distance" yaml:"screen_distance"`
	PatternType        PatternType      `json:"pattern_type,omitempty" yaml:"pattern_type,omitempty"`
	DiffractionPattern []Spot           `json:"diffraction_pattern" yaml:"diffraction_pattern"`
	Wavefronts         [][][2]float64   `json:"wavefronts" yaml:"wavefronts"`
	Advanced           AdvancedSettings `json:"advanced" yaml:"advanced"`
}

// Configured reports whether the snapshot carries both optical components.
func (s Snapshot) Configured() bool {
	return s.LensProfile != nil && s.LightSource != nil
}

// Export flattens the simulation into a snapshot. It never fails, including
// on a partially configured or reset simulation.
func (s *Simulation) Export() Snapshot {
	snap := Snapshot{
		RunID:      s.runID,
		State:      s.state.String(),
		Wavefronts: make([][][2]float64, 0, len(s.wavefronts)),
		Advanced:   s.options.Settings(),
	}
	if s.lens != nil {
		profile := s.lens.Profile()
		snap.LensProfile = &profile
	}
	if s.light != nil {
		state := s.light.Propagate()
		snap.LightSource = &state
	}
	if s.pattern != nil {
		d := s.pattern.ScreenDistance()
		snap.ScreenDistance = &d
		snap.PatternType = s.pattern.Type()
		snap.DiffractionPattern = s.pattern.Spots()
		if snap.DiffractionPattern == nil {
			snap.DiffractionPattern = []Spot{}
		}
	}
	for _, w := range s.wavefronts {
		path := make([][2]float64, len(w.path))
		for i, p := range w.path {
			path[i] = p.Tuple()
		}
		snap.Wavefronts = append(snap.Wavefronts, path)
	}
	return snap
}
