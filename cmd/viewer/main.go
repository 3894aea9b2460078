//go:build ebiten

package main

import (
	"errors"
	"flag"

	"diffract/internal/app"
	"diffract/internal/config"
	"diffract/internal/diffraction"
	"diffract/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := logging.New(config.LogLevel(cfg.LogLevel))

	src := cfg.Sources()
	src.FillFromEnv()
	dcfg, err := config.Resolve(src)
	if err != nil {
		logger.Fatalf("resolve configuration: %v", err)
	}

	sim := diffraction.New(diffraction.WithLogger(logger))
	if err := sim.ConfigureFromConfig(dcfg); err != nil {
		logger.Fatalf("configure: %v", err)
	}
	if err := sim.Start(); err != nil {
		logger.Warnf("initial run failed: %v", err)
	}

	game := app.New(sim, cfg, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("diffract: " + src.Preset)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatalf("%v", err)
	}
}
