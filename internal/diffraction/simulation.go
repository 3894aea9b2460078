package diffraction

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the lifecycle stage of a Simulation.
type State int

const (
	// StateUnconfigured means the lens or the light source is missing.
	StateUnconfigured State = iota
	// StateConfigured means components are set but nothing is computed yet.
	StateConfigured
	// StateComputed means the pattern and the wavefront reflect the components.
	StateComputed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Simulation owns one lens, one light source, one diffraction pattern and
// the wavefronts of the latest run. It is the only entry point renderers and
// exporters use, and it is not safe for concurrent use.
type Simulation struct {
	lens       *Lens
	light      *LightSource
	pattern    *Pattern
	wavefronts []*Wavefront

	state       State
	stepSize    float64
	maxSteps    int
	patternType PatternType
	options     AdvancedOptions
	runID       string

	logger Logger
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithLogger routes simulation logs to l.
func WithLogger(l Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStepSize sets the wavefront propagation step in meters.
func WithStepSize(step float64) Option {
	return func(s *Simulation) { s.stepSize = step }
}

// WithMaxSteps makes Start fail when propagating to the screen would take
// more than n steps. Zero, the default, leaves the walk unbounded.
func WithMaxSteps(n int) Option {
	return func(s *Simulation) {
		if n >= 0 {
			s.maxSteps = n
		}
	}
}

// WithPatternType sets the label used for newly allocated patterns.
func WithPatternType(kind PatternType) Option {
	return func(s *Simulation) { s.patternType = kind }
}

// WithAdvancedOptions sets the multi-slit and coherence settings.
func WithAdvancedOptions(o AdvancedOptions) Option {
	return func(s *Simulation) { s.options = o }
}

// New returns an unconfigured simulation.
func New(opts ...Option) *Simulation {
	s := &Simulation{
		stepSize:    DefaultStepSize,
		patternType: PatternMonochromatic,
		options:     NewAdvancedOptions(),
		logger:      NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports the lifecycle stage.
func (s *Simulation) State() State { return s.state }

// Lens returns the configured lens, or nil.
func (s *Simulation) Lens() *Lens { return s.lens }

// LightSource returns a copy of the configured light source, or nil. Changes
// go through SetFloatParameter or UpdateParameters.
func (s *Simulation) LightSource() *LightSource { return s.light.Clone() }

// Pattern returns the diffraction pattern, or nil before configuration.
func (s *Simulation) Pattern() *Pattern { return s.pattern }

// Wavefronts returns copies of the wavefronts of the latest run.
func (s *Simulation) Wavefronts() []*Wavefront {
	out := make([]*Wavefront, len(s.wavefronts))
	for i, w := range s.wavefronts {
		out[i] = w.Clone()
	}
	return out
}

// MaxSteps returns the propagation step ceiling; zero means unbounded.
func (s *Simulation) MaxSteps() int { return s.maxSteps }

// RunID identifies the latest successful run; empty before the first one.
func (s *Simulation) RunID() string { return s.runID }

// StepSize returns the wavefront propagation step in meters.
func (s *Simulation) StepSize() float64 { return s.stepSize }

// Options returns the advanced settings carried by the simulation.
func (s *Simulation) Options() AdvancedOptions { return s.options }

// Configure installs the optical components and allocates a fresh pattern for
// the given screen distance. The light source is copied, so later changes to
// light do not reach the simulation. Nothing is computed until Start.
func (s *Simulation) Configure(lens *Lens, light *LightSource, screenDistance float64) {
	s.lens = lens
	s.light = light.Clone()
	s.pattern = NewPattern(screenDistance, s.patternType)
	s.wavefronts = nil
	s.runID = ""
	s.refreshState()
	s.logger.Debugf("configured simulation: screen distance %g m, state %s", screenDistance, s.state)
}

// ConfigureFromConfig validates cfg, builds its components and configures
// the simulation with them. The simulation is untouched on error.
func (s *Simulation) ConfigureFromConfig(cfg Config) error {
	lens, light, err := cfg.Build()
	if err != nil {
		return err
	}
	kind, err := ParsePatternType(cfg.Simulation.PatternType)
	if err != nil {
		return err
	}
	s.patternType = kind
	if cfg.Simulation.StepSize > 0 {
		s.stepSize = cfg.Simulation.StepSize
	}
	s.options = AdvancedOptionsFrom(cfg.Advanced)
	s.Configure(lens, light, cfg.Simulation.ScreenDistance)
	return nil
}

// Start computes the diffraction pattern and propagates a single wavefront
// from the light source along the optical axis to the screen.
//
// On failure the pattern spots and wavefronts are cleared so no stale result
// outlives the parameters that produced it.
func (s *Simulation) Start() error {
	if s.lens == nil || s.light == nil {
		return preconditionf("lens and light source must be configured before starting")
	}
	if s.pattern == nil {
		return preconditionf("diffraction pattern has not been allocated")
	}
	s.wavefronts = nil
	s.runID = ""
	s.state = StateConfigured

	if err := s.pattern.Calculate(s.light, s.lens); err != nil {
		s.logger.Warnf("pattern calculation failed: %v", err)
		return err
	}
	wf := NewWavefront(s.light.Position(), 0, 0)
	if err := s.propagate(wf); err != nil {
		s.pattern.spots = nil
		s.logger.Warnf("wavefront propagation failed: %v", err)
		return err
	}
	s.wavefronts = []*Wavefront{wf}
	s.runID = uuid.New().String()
	s.state = StateComputed
	s.logger.Infof("run %s: %d spots, %d wavefront points", s.runID, len(s.pattern.spots), wf.Len())
	return nil
}

// Update lists replacement components. Nil fields are left unchanged.
type Update struct {
	Lens           *Lens
	Light          *LightSource
	ScreenDistance *float64
}

// UpdateParameters replaces the provided components and recomputes
// everything through Start.
func (s *Simulation) UpdateParameters(u Update) error {
	if u.Lens != nil {
		s.lens = u.Lens
	}
	if u.Light != nil {
		s.light = u.Light.Clone()
	}
	if u.ScreenDistance != nil {
		if s.pattern == nil {
			s.pattern = NewPattern(*u.ScreenDistance, s.patternType)
		} else {
			s.pattern.SetScreenDistance(*u.ScreenDistance)
		}
	}
	s.refreshState()
	return s.Start()
}

// Reset discards every component and returns to the unconfigured state.
func (s *Simulation) Reset() {
	s.lens = nil
	s.light = nil
	s.pattern = nil
	s.wavefronts = nil
	s.runID = ""
	s.state = StateUnconfigured
	s.logger.Debugf("simulation reset")
}

// AdvancePhase rotates the phase of every wavefront by increment radians.
// Geometry is unaffected. A NaN or infinite increment is rejected and no
// phase changes.
func (s *Simulation) AdvancePhase(increment float64) error {
	if !finite(increment) {
		return invalidParam("advance phase", "increment", increment)
	}
	for _, w := range s.wavefronts {
		if err := w.UpdatePhase(increment); err != nil {
			return err
		}
	}
	return nil
}

// propagate walks wf to the screen, honouring the WithMaxSteps ceiling.
func (s *Simulation) propagate(wf *Wavefront) error {
	distance := s.pattern.ScreenDistance()
	if s.maxSteps > 0 && StepCount(distance, s.stepSize) > float64(s.maxSteps) {
		return fmt.Errorf("%w: %d steps of %g m exceed the limit of %d",
			invalidParam("propagate", "distance", distance), int64(StepCount(distance, s.stepSize)), s.stepSize, s.maxSteps)
	}
	return wf.Propagate(distance, s.stepSize)
}

func (s *Simulation) refreshState() {
	switch {
	case s.lens == nil || s.light == nil:
		s.state = StateUnconfigured
	default:
		s.state = StateConfigured
	}
}
