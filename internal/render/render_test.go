package render

import (
	"image/color"
	"testing"

	"diffract/internal/core"
	"diffract/internal/diffraction"
)

func computedSnapshot(t *testing.T) diffraction.Snapshot {
	t.Helper()
	cfg := diffraction.DefaultConfig()
	cfg.Simulation.StepSize = 0.125
	sim := diffraction.New()
	if err := sim.ConfigureFromConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	return sim.Export()
}

func TestRasterizeLayout(t *testing.T) {
	grid := core.NewByteGrid(64, 32)
	Rasterize(computedSnapshot(t), grid)
	f := NewFrame(computedSnapshot(t), grid.Size())

	if f.AxisRow != 16 || f.ScreenCol != 64-1-Margin {
		t.Fatalf("unexpected frame %+v", f)
	}
	if got := grid.At(Margin, f.AxisRow); got != SourceLevel {
		t.Fatalf("light source cell = %d, want %d", got, SourceLevel)
	}
	if got := grid.At(f.ScreenCol, f.AxisRow); got != WavefrontLevel {
		t.Fatalf("wavefront should reach the screen, cell = %d", got)
	}
	if got := grid.At(f.ScreenCol, 0); got != ScreenLevel {
		t.Fatalf("screen cell = %d, want %d", got, ScreenLevel)
	}
	if got := grid.At(Margin+10, f.AxisRow); got != AxisLevel {
		t.Fatalf("axis cell = %d, want %d", got, AxisLevel)
	}

	// Central maximum on the axis, outermost orders at the margins.
	for _, row := range []int{f.AxisRow, Margin, grid.H - Margin} {
		if got := grid.At(grid.W-1, row); got != 255 {
			t.Fatalf("spot band at row %d = %d, want 255", row, got)
		}
	}
	if got := grid.At(grid.W-1, 1); got != 0 {
		t.Fatalf("row outside the pattern lit: %d", got)
	}
}

func TestRasterizeClearsUnconfigured(t *testing.T) {
	grid := core.NewByteGrid(16, 16)
	grid.Max(3, 3, 200)
	Rasterize(diffraction.New().Export(), grid)
	for i, c := range grid.Cells() {
		if c != 0 {
			t.Fatalf("cell %d = %d after rasterizing an empty snapshot", i, c)
		}
	}
}

func TestSpotLevel(t *testing.T) {
	cases := map[float64]uint8{0: 0, -1: 0, 0.5: 128, 1: 255, 3: 255}
	for in, want := range cases {
		if got := spotLevel(in); got != want {
			t.Fatalf("spotLevel(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestPaletteAndPixels(t *testing.T) {
	tint := color.RGBA{R: 0, G: 200, B: 100, A: 255}
	palette := Palette(tint)
	if len(palette) != 256 {
		t.Fatalf("palette has %d entries", len(palette))
	}
	if palette[0] != Background || palette[WavefrontLevel] != tint || palette[255] != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("palette anchors: %v %v %v", palette[0], palette[WavefrontLevel], palette[255])
	}

	grid := core.NewByteGrid(2, 1)
	grid.Max(1, 0, 255)
	px := Pixels(grid, palette, nil)
	if len(px) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(px))
	}
	if px[0] != Background.R || px[4] != 255 || px[7] != 255 {
		t.Fatalf("unexpected pixels %v", px)
	}

	cleared := Pixels(grid, nil, px)
	for i, b := range cleared {
		if b != 0 {
			t.Fatalf("empty palette should clear pixels, byte %d = %d", i, b)
		}
	}
}

func TestWavelengthColor(t *testing.T) {
	red := WavelengthColor(650)
	if red.R != 255 || red.B != 0 {
		t.Fatalf("650 nm = %v", red)
	}
	blue := WavelengthColor(450)
	if blue.B != 255 || blue.R != 0 {
		t.Fatalf("450 nm = %v", blue)
	}
	green := WavelengthColor(532)
	if green.G != 255 {
		t.Fatalf("532 nm = %v", green)
	}
	if gray := WavelengthColor(1064); gray.R != gray.G || gray.G != gray.B {
		t.Fatalf("infrared should be neutral, got %v", gray)
	}
}
