//go:build ebiten

package app

import (
	"diffract/internal/core"
	"diffract/internal/diffraction"
	"diffract/internal/render"
	"diffract/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a diffraction simulation to the ebiten.Game interface.
type Game struct {
	sim     *diffraction.Simulation
	logger  diffraction.Logger
	grid    *core.ByteGrid
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep

	scale      int
	panelWidth int
	paused     bool
	tint       float64
}

// New constructs a Game for the provided simulation.
func New(sim *diffraction.Simulation, cfg *Config, logger diffraction.Logger) *Game {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	grid := core.NewByteGrid(cfg.Width, cfg.Height)
	g := &Game{
		sim:        sim,
		logger:     logger,
		grid:       grid,
		painter:    render.NewGridPainter(grid.W, grid.H, nil),
		overlay:    ui.NewOverlay(scale),
		hud:        ui.NewHUD(sim, "Diffraction Controls", cfg.PanelWidth),
		clock:      core.NewFixedStep(cfg.TPS),
		scale:      scale,
		panelWidth: cfg.PanelWidth,
	}
	g.refreshPalette()
	return g
}

// Update handles per-frame input and advances the wave phase.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sim.Start(); err != nil {
			g.hud.SetStatus(err.Error())
		} else {
			g.hud.SetStatus("")
		}
	}
	g.nudgeOnKey(ebiten.KeyUp, "wavelength_nm", 1)
	g.nudgeOnKey(ebiten.KeyDown, "wavelength_nm", -1)
	g.nudgeOnKey(ebiten.KeyRight, "screen_distance", 1)
	g.nudgeOnKey(ebiten.KeyLeft, "screen_distance", -1)

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	g.refreshPalette()

	ticks := g.clock.Ticks()
	if !g.paused && ticks > 0 {
		if err := g.sim.AdvancePhase(float64(ticks) * PhaseStep); err != nil {
			g.hud.SetStatus(err.Error())
		}
	}
	return nil
}

// Draw renders the simulation, the overlay and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Export()
	render.Rasterize(snap, g.grid)
	g.painter.Blit(screen, g.grid, g.scale)
	g.overlay.Draw(screen, snap, render.NewFrame(snap, g.grid.Size()), g.phase())
	g.hud.Draw(screen, g.viewWidth(), g.grid.H*g.scale)
}

// Layout reports the logical screen size: the scaled raster plus the panel.
func (g *Game) Layout(int, int) (int, int) {
	return g.viewWidth() + g.panelWidth, g.grid.H * g.scale
}

func (g *Game) viewWidth() int { return g.grid.W * g.scale }

func (g *Game) nudgeOnKey(key ebiten.Key, param string, direction int) {
	if !inpututil.IsKeyJustPressed(key) {
		return
	}
	if !Nudge(g.sim, param, direction) {
		g.logger.Debugf("nudge %s by %d ignored", param, direction)
	}
}

func (g *Game) phase() float64 {
	if fronts := g.sim.Wavefronts(); len(fronts) > 0 {
		return fronts[0].Phase()
	}
	return 0
}

// refreshPalette retints the raster when the wavelength changes.
func (g *Game) refreshPalette() {
	light := g.sim.LightSource()
	if light == nil {
		return
	}
	nm := light.Wavelength() * 1e9
	if nm == g.tint {
		return
	}
	g.tint = nm
	g.painter.SetPalette(render.Palette(render.WavelengthColor(nm)))
}
