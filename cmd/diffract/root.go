package main

import (
	"diffract/internal/config"
	"diffract/internal/diffraction"
	"diffract/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the settings shared by every subcommand. Persistent flags are
// bound into v so DIFFRACT_* environment variables fill the ones left unset.
type cli struct {
	v         *viper.Viper
	overrides config.KVList
	logger    *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "diffract",
		Short:         "Simulate light diffracting through a lens aperture",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger = logging.NewWithWriter(c.v.GetString(config.KeyLogLevel), cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.String(config.KeyConfig, "", "YAML or JSON configuration file (env "+config.EnvConfig+")")
	flags.String(config.KeyPreset, "", "named configuration preset (env "+config.EnvPreset+")")
	flags.Var(&c.overrides, "set", "override a parameter as key=value (repeatable)")
	flags.String(config.KeyLogLevel, "", "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	for _, key := range []string{config.KeyConfig, config.KeyPreset, config.KeyLogLevel} {
		_ = c.v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		newRunCmd(c),
		newExportCmd(c),
		newPresetsCmd(),
		newParamsCmd(c),
		newConfigCmd(c),
		newSweepCmd(c),
	)
	return root
}

// resolve layers preset, file and overrides into a validated config.
func (c *cli) resolve() (diffraction.Config, error) {
	return config.Resolve(config.SourcesFrom(c.v, c.overrides))
}

// run resolves the configuration and computes one run.
func (c *cli) run() (*diffraction.Simulation, error) {
	cfg, err := c.resolve()
	if err != nil {
		return nil, err
	}
	sim := diffraction.New(diffraction.WithLogger(c.logger))
	if err := sim.ConfigureFromConfig(cfg); err != nil {
		return nil, err
	}
	if err := sim.Start(); err != nil {
		return nil, err
	}
	return sim, nil
}
