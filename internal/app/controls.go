package app

import (
	"math"
	"strconv"

	"diffract/internal/core"
)

// PhaseStep is the phase advance per animation tick, in radians.
const PhaseStep = math.Pi / 30

// Tunable is the parameter surface the viewer drives from the keyboard.
type Tunable interface {
	core.ParameterControlsProvider
	core.FloatParameterSetter
	Parameters() core.ParameterSnapshot
}

// Nudge moves the control named key by direction steps, clamped to its
// bounds, and reports whether the new value was accepted.
func Nudge(t Tunable, key string, direction int) bool {
	if direction == 0 {
		return false
	}
	var ctrl core.ParameterControl
	found := false
	for _, c := range t.ParameterControls() {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	param, ok := t.Parameters().Lookup(key)
	if !ok {
		return false
	}
	current, err := strconv.ParseFloat(param.Value, 64)
	if err != nil {
		return false
	}
	target := ctrl.Clamp(current + float64(direction)*ctrl.Step)
	if target == current {
		return false
	}
	return t.SetFloatParameter(key, target)
}
