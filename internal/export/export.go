// Package export writes simulation snapshots as documents, tables and figures.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"diffract/internal/diffraction"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no writer handles.
	ErrUnsupportedFormat = errors.New("export: unsupported format")

	// ErrEmptyPattern is returned when a figure is requested for a snapshot
	// without diffraction spots.
	ErrEmptyPattern = errors.New("export: no diffraction spots to plot")

	// ErrNonFinite is returned by the JSON and CSV writers when a snapshot
	// value is NaN or infinite, which JSON cannot represent.
	ErrNonFinite = errors.New("export: value is not finite")
)

// Formats lists the file extensions File accepts.
var Formats = []string{".json", ".yaml", ".yml", ".csv", ".png", ".svg"}

// File writes snap to path in the format implied by its extension.
func File(path string, snap diffraction.Snapshot) error {
	ext := strings.ToLower(filepath.Ext(path))
	var write func(io.Writer, diffraction.Snapshot) error
	switch ext {
	case ".json":
		write = JSON
	case ".yaml", ".yml":
		write = YAML
	case ".csv":
		write = CSV
	case ".png", ".svg":
		return Image(path, snap)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, ext, strings.Join(Formats, ", "))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := write(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// JSON writes snap as an indented JSON document. A NaN or infinite value,
// such as an unvalidated light source position, fails with ErrNonFinite
// naming the field; YAML writes those values as .nan and .inf.
func JSON(w io.Writer, snap diffraction.Snapshot) error {
	if err := checkFinite(snap); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(snap)
}

// YAML writes snap as a YAML document.
func YAML(w io.Writer, snap diffraction.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

// CSV writes snap as Key,Value rows, one per top-level field. Structured
// values are JSON encoded into their cell, so non-finite values fail as in JSON.
func CSV(w io.Writer, snap diffraction.Snapshot) error {
	if err := checkFinite(snap); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Key", "Value"}); err != nil {
		return err
	}
	rows := []struct {
		key   string
		value any
	}{
		{"run_id", snap.RunID},
		{"state", snap.State},
		{"lens_profile", snap.LensProfile},
		{"light_source", snap.LightSource},
		{"screen_distance", snap.ScreenDistance},
		{"pattern_type", string(snap.PatternType)},
		{"diffraction_pattern", snap.DiffractionPattern},
		{"wavefronts", snap.Wavefronts},
		{"advanced", snap.Advanced},
	}
	for _, row := range rows {
		cell, err := csvCell(row.value)
		if err != nil {
			return fmt.Errorf("%s: %w", row.key, err)
		}
		if err := cw.Write([]string{row.key, cell}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case *float64:
		if val == nil {
			return "", nil
		}
		return strconv.FormatFloat(*val, 'g', -1, 64), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// checkFinite reports the first NaN or infinite value in snap.
func checkFinite(snap diffraction.Snapshot) error {
	bad := func(field string, v float64) error {
		return fmt.Errorf("%w: %s=%v", ErrNonFinite, field, v)
	}
	if lp := snap.LensProfile; lp != nil {
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"lens_profile.focal_length", lp.FocalLength},
			{"lens_profile.curvature_radius", lp.CurvatureRadius},
			{"lens_profile.refractive_index", lp.RefractiveIndex},
		} {
			if !isFinite(f.v) {
				return bad(f.name, f.v)
			}
		}
	}
	if ls := snap.LightSource; ls != nil {
		for i, v := range ls.Position {
			if !isFinite(v) {
				return bad(fmt.Sprintf("light_source.position[%d]", i), v)
			}
		}
	}
	if d := snap.ScreenDistance; d != nil && !isFinite(*d) {
		return bad("screen_distance", *d)
	}
	for i, sp := range snap.DiffractionPattern {
		if !isFinite(sp.Position) {
			return bad(fmt.Sprintf("diffraction_pattern[%d].position", i), sp.Position)
		}
	}
	for i, path := range snap.Wavefronts {
		for j, p := range path {
			for k, v := range p {
				if !isFinite(v) {
					return bad(fmt.Sprintf("wavefronts[%d][%d][%d]", i, j, k), v)
				}
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
