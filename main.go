package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/drift-fx/prism/config"
	"github.com/drift-fx/prism/effect"
	"github.com/drift-fx/prism/renderer"
	"github.com/drift-fx/prism/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driving a synthetic pointer")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Flow noise seed (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited, headless only)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(cfg, output, *maxTicks)
	} else {
		runGraphical(cfg, output)
	}
}

// runHeadless drives the effect with a synthetic pointer, for profiling
// and telemetry capture without a window.
func runHeadless(cfg *config.Config, output *telemetry.OutputManager, maxTicks int) {
	e := effect.New(cfg.Screen.Width, cfg.Screen.Height)
	defer e.Close()

	wireOutput(e, output)

	dt := float32(1) / float32(cfg.Screen.TargetFPS)

	slog.Info("starting headless run",
		"seed", cfg.Simulation.Seed,
		"max_ticks", maxTicks,
		"dt", dt,
	)

	var t float64
	for {
		// Lissajous path keeps the pointer moving through the whole
		// viewport with continuously varying velocity.
		px := float32(0.5 + 0.42*math.Sin(t*1.3))
		py := float32(0.5 + 0.42*math.Sin(t*2.1+0.5))
		t += float64(dt)

		e.Tick(dt, px, py)

		if maxTicks > 0 && int(e.Ticks()) >= maxTicks {
			slog.Info("max ticks reached", "tick", e.Ticks())
			break
		}
	}

	// Flush and record the partial final window.
	stats := e.FlushTelemetry()
	stats.LogStats()
	if err := output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

// runGraphical runs the interactive window, driving the effect from the
// mouse.
func runGraphical(cfg *config.Config, output *telemetry.OutputManager) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Prism")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()

	e := effect.New(screenW, screenH)
	defer e.Close()

	wireOutput(e, output)

	trail := renderer.NewTrailLayer(int32(screenW), int32(screenH))
	fw, fh := e.FieldSize()
	trail.Init(fw, fh)
	defer trail.Unload()

	sparks := renderer.NewSparkRenderer(int32(screenW), int32(screenH))

	e.SetUploader(trail.Upload)

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			screenW = rl.GetScreenWidth()
			screenH = rl.GetScreenHeight()
			e.Resize(screenW, screenH)
			fw, fh := e.FieldSize()
			trail.Resize(float32(screenW), float32(screenH), fw, fh)
			sparks.Resize(float32(screenW), float32(screenH))
		}

		mouse := rl.GetMousePosition()
		px := mouse.X / float32(screenW)
		py := mouse.Y / float32(screenH)

		e.SetHovered(rl.IsCursorOnScreen())
		e.Tick(rl.GetFrameTime(), px, py)
		e.RecordFrame()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 12, B: 16, A: 255})

		drawBackdrop(screenW, screenH)
		trail.Draw()
		sparks.Draw(e.Sparks())
		drawForeground()

		rl.EndDrawing()
	}
}

// wireOutput routes flushed telemetry windows and perf reports to CSV.
func wireOutput(e *effect.Effect, output *telemetry.OutputManager) {
	if output == nil {
		return
	}
	e.OnWindow(func(stats telemetry.WindowStats) {
		if err := output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	})
	e.OnPerf(func(stats telemetry.PerfStats) {
		if err := output.WritePerf(stats, e.Ticks()); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	})
}

// drawBackdrop renders placeholder content underneath the trail so the
// refraction and alpha blending have something to play against.
func drawBackdrop(screenW, screenH int) {
	w := float32(screenW)
	h := float32(screenH)

	rl.DrawText("move the pointer", int32(w*0.5)-160, int32(h*0.5)-20, 40, rl.Color{R: 70, G: 74, B: 88, A: 255})

	for i := 0; i < 8; i++ {
		x := w * float32(i+1) / 9
		rl.DrawLineV(rl.Vector2{X: x, Y: 0}, rl.Vector2{X: x, Y: h}, rl.Color{R: 30, G: 32, B: 40, A: 255})
	}
}

// drawForeground renders the demo title block on top; the trail composites
// behind foreground content.
func drawForeground() {
	rl.DrawText("prism", 24, 20, 32, rl.RayWhite)
	rl.DrawText("pointer-driven fluid trail", 24, 56, 16, rl.Color{R: 150, G: 154, B: 168, A: 255})
}
