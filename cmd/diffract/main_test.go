package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diffract/internal/config"
	"diffract/internal/diffraction"
)

func clearEnv(t *testing.T) {
	t.Setenv(config.EnvPreset, "")
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	return executeWithEnv(t, args...)
}

func executeWithEnv(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--preset", "narrow-aperture", "--width", "20", "--height", "4")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"visible orders   9", "wavelength       450.0 nm", "9 orders"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--set", "screen_distance=-1")
	if !diffraction.IsValidationError(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestConfigCommandAppliesOverrides(t *testing.T) {
	out, err := execute(t, "config", "--preset", "hene", "--set", "intensity=0.25")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := diffraction.DecodeConfig([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LightSource.Intensity != 0.25 || cfg.LightSource.Wavelength != 632.8e-9 {
		t.Fatalf("unexpected resolved config %+v", cfg.LightSource)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range diffraction.PresetNames() {
		if !strings.Contains(out, name) {
			t.Fatalf("preset %q not listed:\n%s", name, out)
		}
	}
}

func TestParamsCommand(t *testing.T) {
	out, err := execute(t, "params")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Light Source") || !strings.Contains(out, "wavelength_nm") {
		t.Fatalf("unexpected params output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if _, err := execute(t, "export", "--out", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"diffraction_pattern"`)) {
		t.Fatalf("export missing pattern: %s", data)
	}

	_, err = execute(t, "export", "--out", filepath.Join(t.TempDir(), "run.txt"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestSweepCommand(t *testing.T) {
	out, err := execute(t, "sweep", "--preset", "narrow-aperture", "--key", "wavelength_nm", "--from", "450", "--to", "700", "--steps", "2", "--workers", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}
	if fields := strings.Fields(lines[1]); fields[0] != "450" || fields[1] != "9" {
		t.Fatalf("unexpected first row %q", lines[1])
	}

	_, err = execute(t, "sweep", "--key", "shape")
	if !errors.Is(err, diffraction.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestEnvironmentFillsUnsetFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvPreset, "narrow-aperture")

	out, err := executeWithEnv(t, "run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "visible orders   9") {
		t.Fatalf("preset from the environment not applied:\n%s", out)
	}

	out, err = executeWithEnv(t, "run", "--preset", "default")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "visible orders   21") {
		t.Fatalf("--preset should override the environment:\n%s", out)
	}
}
