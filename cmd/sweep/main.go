package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"diffract/internal/config"
	"diffract/internal/diffraction"
)

type gridResult struct {
	aperture float64
	record   diffraction.SweepRecord
}

func main() {
	preset := flag.String("preset", config.DefaultPreset, "base configuration preset")
	from := flag.Float64("from", 400, "first wavelength in nm")
	to := flag.Float64("to", 700, "last wavelength in nm")
	steps := flag.Int("steps", 7, "wavelengths per aperture")
	apertures := flag.String("apertures", "2e-6,5e-6,1e-5", "comma separated aperture radii in meters")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "rows to show in the widest-pattern ranking")
	var overrides config.KVList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	base, err := config.Resolve(config.Sources{Preset: *preset, Overrides: overrides})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve configuration: %v\n", err)
		os.Exit(2)
	}
	radii, err := parseList(*apertures)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apertures: %v\n", err)
		os.Exit(2)
	}
	wavelengths := diffraction.SweepValues(*from, *to, *steps)

	fmt.Printf("Sweeping %d apertures x %d wavelengths (%d workers)\n", len(radii), len(wavelengths), *workers)

	start := time.Now()
	var all []gridResult
	for _, radius := range radii {
		cfg := diffraction.Apply(base, map[string]string{"aperture": fmt.Sprintf("%g", radius)})
		records, err := diffraction.Sweep(cfg, "wavelength_nm", wavelengths, *workers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\naperture %.3g m\n", radius)
		for _, rec := range records {
			if rec.Err != nil {
				fmt.Printf("  %6.1f nm  error: %v\n", rec.Value, rec.Err)
				continue
			}
			fmt.Printf("  %6.1f nm  orders=%2d  span=%.4g m\n", rec.Value, rec.Spots, 2*rec.MaxPosition)
			all = append(all, gridResult{aperture: radius, record: rec})
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].record.MaxPosition > all[j].record.MaxPosition })
	elapsed := time.Since(start)

	fmt.Printf("\nWidest patterns (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) aperture=%.3g m wavelength=%.1f nm orders=%d max=%.4g m\n",
			i+1, res.aperture, res.record.Value, res.record.Spots, res.record.MaxPosition)
	}
}
