package diffraction

import (
	"strconv"

	"diffract/internal/core"
)

// Parameters describes the current components for HUDs and CLI listings.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name:    "Simulation",
			Summary: s.state.String(),
			Params: []core.Parameter{
				stringParam("state", "State", s.state.String()),
				stringParam("run_id", "Run", s.runID),
				floatParam("step_size", "Step size", s.stepSize, "m"),
			},
		},
	}
	if s.lens != nil {
		groups = append(groups, core.ParameterGroup{
			Name: "Lens",
			Params: []core.Parameter{
				floatParam("focal_length", "Focal length", s.lens.FocalLength(), "m"),
				floatParam("curvature_radius", "Curvature radius", s.lens.CurvatureRadius(), "m"),
				floatParam("refractive_index", "Refractive index", s.lens.RefractiveIndex(), ""),
				stringParam("shape", "Shape", string(s.lens.Shape())),
			},
		})
	}
	if s.light != nil {
		pos := s.light.Position()
		groups = append(groups, core.ParameterGroup{
			Name: "Light Source",
			Params: []core.Parameter{
				floatParam("position_x", "Position x", pos.X, "m"),
				floatParam("position_y", "Position y", pos.Y, "m"),
				floatParam("wavelength_nm", "Wavelength", s.light.Wavelength()*1e9, "nm"),
				floatParam("intensity", "Intensity", s.light.Intensity(), ""),
				floatParam("coherence", "Coherence", s.light.Coherence(), ""),
			},
		})
	}
	if s.pattern != nil {
		groups = append(groups, core.ParameterGroup{
			Name: "Screen",
			Params: []core.Parameter{
				floatParam("screen_distance", "Screen distance", s.pattern.ScreenDistance(), "m"),
				stringParam("pattern_type", "Pattern", string(s.pattern.Type())),
				intParam("spots", "Visible orders", len(s.pattern.spots)),
			},
		})
	}
	adv := s.options.Settings()
	groups = append(groups, core.ParameterGroup{
		Name:    "Advanced",
		Summary: "not used by the solver",
		Params: []core.Parameter{
			boolParam("multi_slit", "Multi-slit", adv.MultiSlitEnabled),
			floatParam("slit_spacing", "Slit spacing", adv.SlitSpacing, "m"),
			intParam("num_slits", "Slits", adv.NumSlits),
			boolParam("coherence_enabled", "Coherence", adv.CoherenceEnabled),
			floatParam("phase_shift", "Phase shift", adv.PhaseShift, "rad"),
		},
	})
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values a HUD may nudge.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "wavelength_nm", Label: "Wavelength (nm)", Type: core.ParamTypeFloat, Step: 10, Min: 100, Max: 2000, HasMin: true, HasMax: true},
		{Key: "screen_distance", Label: "Screen distance (m)", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 10, HasMin: true, HasMax: true},
		{Key: "curvature_radius", Label: "Aperture (m)", Type: core.ParamTypeFloat, Step: 1e-6, Min: 1e-6, Max: 0.1, HasMin: true, HasMax: true},
		{Key: "intensity", Label: "Intensity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates one value and recomputes the run. It reports
// false for unknown keys, rejected values or a failed recompute.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	var err error
	switch key {
	case "screen_distance":
		err = s.UpdateParameters(Update{ScreenDistance: &value})
	case "curvature_radius", "focal_length", "refractive_index":
		if s.lens == nil {
			return false
		}
		f, r, n := s.lens.FocalLength(), s.lens.CurvatureRadius(), s.lens.RefractiveIndex()
		switch key {
		case "curvature_radius":
			r = value
		case "focal_length":
			f = value
		default:
			n = value
		}
		err = s.UpdateParameters(Update{Lens: NewLens(f, r, n, s.lens.Shape())})
	case "wavelength", "wavelength_nm", "intensity", "position_x", "position_y":
		if s.light == nil {
			return false
		}
		switch key {
		case "wavelength":
			err = s.light.SetWavelength(value)
		case "wavelength_nm":
			err = s.light.SetWavelength(value * 1e-9)
		case "intensity":
			err = s.light.SetIntensity(value)
		case "position_x":
			s.light.SetPosition(value, s.light.Position().Y)
		case "position_y":
			s.light.SetPosition(s.light.Position().X, value)
		}
		if err == nil {
			err = s.UpdateParameters(Update{})
		}
	default:
		return false
	}
	if err != nil {
		s.logger.Warnf("set %s=%g rejected: %v", key, value, err)
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64, unit string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'g', 6, 64),
		Unit:  unit,
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
