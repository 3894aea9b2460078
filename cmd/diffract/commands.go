package main

import (
	"fmt"
	"math"
	"runtime"
	"text/tabwriter"

	"diffract/internal/diffraction"
	"diffract/internal/export"

	"github.com/spf13/cobra"
)

func newRunCmd(c *cli) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the diffraction pattern and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := c.run()
			if err != nil {
				return err
			}
			snap := sim.Export()
			stats := export.Summary(snap)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "run %s\n", snap.RunID)
			if focal, err := sim.Lens().FocalPoint(); err == nil {
				fmt.Fprintf(out, "focal point      %.6g m\n", focal)
			}
			fmt.Fprintf(out, "wavelength       %.1f nm\n", sim.LightSource().Wavelength()*1e9)
			fmt.Fprintf(out, "screen distance  %.6g m\n", *snap.ScreenDistance)
			fmt.Fprintf(out, "visible orders   %d\n", stats.Spots)
			fmt.Fprintf(out, "total intensity  %.4g\n", stats.TotalIntensity)
			fmt.Fprintf(out, "pattern span     %.6g m\n", stats.Span())
			fmt.Fprintf(out, "wavefront points %d\n\n", stats.PathPoints)
			fmt.Fprintln(out, export.Preview(snap, width, height))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 60, "preview width in columns")
	cmd.Flags().IntVar(&height, "height", 10, "preview height in rows")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compute a run and write it as JSON, YAML, CSV, PNG or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := c.run()
			if err != nil {
				return err
			}
			if err := export.File(out, sim.Export()); err != nil {
				return err
			}
			c.logger.Infof("exported run %s to %s", sim.RunID(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; the extension selects the format")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named configuration presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWAVELENGTH\tAPERTURE\tSCREEN")
			presets := diffraction.Presets()
			for _, name := range diffraction.PresetNames() {
				p := presets[name]
				fmt.Fprintf(tw, "%s\t%.1f nm\t%.3g m\t%.3g m\n", name,
					p.LightSource.Wavelength*1e9, p.Lens.CurvatureRadius, p.Simulation.ScreenDistance)
			}
			return tw.Flush()
		},
	}
}

func newParamsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Compute a run and list every parameter group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := c.run()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, group := range sim.Parameters().Groups {
				header := group.Name
				if group.Summary != "" {
					header += " (" + group.Summary + ")"
				}
				fmt.Fprintf(tw, "%s\n", header)
				for _, p := range group.Params {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Key, p.Value, p.Unit)
				}
			}
			return tw.Flush()
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve()
			if err != nil {
				return err
			}
			data, err := diffraction.EncodeConfig(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSweepCmd(c *cli) *cobra.Command {
	var (
		key      string
		from, to float64
		steps    int
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Vary one parameter and tabulate the resulting patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve()
			if err != nil {
				return err
			}
			records, err := diffraction.Sweep(cfg, key, diffraction.SweepValues(from, to, steps), workers)
			if err != nil {
				return err
			}
			return writeSweep(cmd, records)
		},
	}
	cmd.Flags().StringVar(&key, "key", "wavelength_nm", "parameter to vary")
	cmd.Flags().Float64Var(&from, "from", 400, "first value")
	cmd.Flags().Float64Var(&to, "to", 700, "last value")
	cmd.Flags().IntVar(&steps, "steps", 7, "number of values")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	return cmd
}

func writeSweep(cmd *cobra.Command, records []diffraction.SweepRecord) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tSPOTS\tMAX POSITION\tFOCAL POINT\tPATH\tERROR")
	for _, rec := range records {
		focal := "-"
		if !math.IsNaN(rec.FocalPoint) {
			focal = fmt.Sprintf("%.4g", rec.FocalPoint)
		}
		errText := ""
		if rec.Err != nil {
			errText = rec.Err.Error()
		}
		fmt.Fprintf(tw, "%g\t%d\t%.4g\t%s\t%d\t%s\n", rec.Value, rec.Spots, rec.MaxPosition, focal, rec.PathPoints, errText)
	}
	return tw.Flush()
}
