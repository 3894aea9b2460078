package app

import (
	"flag"

	"diffract/internal/config"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Preset     string
	ConfigFile string
	Overrides  config.KVList
	LogLevel   string

	Width      int
	Height     int
	Scale      int
	TPS        int
	PanelWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 200, Height: 120, Scale: 4, TPS: 60, PanelWidth: 280}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "named configuration preset (env "+config.EnvPreset+")")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML or JSON configuration file (env "+config.EnvConfig+")")
	fs.Var(&c.Overrides, "set", "override a parameter as key=value (repeatable)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	fs.IntVar(&c.Width, "width", c.Width, "raster width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "raster height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "animation ticks per second")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "HUD panel width in pixels, 0 hides it")
}

// Sources returns the configuration layers selected on the command line.
func (c *Config) Sources() config.Sources {
	return config.Sources{Preset: c.Preset, File: c.ConfigFile, Overrides: c.Overrides}
}
