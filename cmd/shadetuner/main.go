// Shading parameter tuner - interactive visualization with sliders.
//
// Usage: go run ./cmd/shadetuner
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/drift-fx/prism/config"
	"github.com/drift-fx/prism/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	config.MustInit("")
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Shading Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Synthetic density field: a few soft blobs and a curved stroke, enough
	// structure to exercise gradients, specular and the alpha ramp.
	gridSize := 256
	field := sim.NewDensityField(gridSize, gridSize)
	fillTestField(field)

	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	shader := sim.NewShader(cfg)
	needsShade := true

	for !rl.WindowShouldClose() {
		if needsShade {
			shader.Shade(pixels, field)
			rl.UpdateTexture(texture, pixels)
			needsShade = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 24, G: 24, B: 30, A: 255})

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Shading Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		changed := false
		changed = slider(&panelX, &panelY, "Normal scale (gradient steepness)",
			&cfg.Shading.NormalScale, 1, 40, "%.1f") || changed
		changed = slider(&panelX, &panelY, "Palette shift (per-channel phase)",
			&cfg.Shading.PaletteShift, 0, 0.1, "%.3f") || changed
		changed = slider(&panelX, &panelY, "Specular power",
			&cfg.Shading.SpecularPower, 1, 100, "%.0f") || changed
		changed = slider(&panelX, &panelY, "Specular gain",
			&cfg.Shading.SpecularGain, 0, 2, "%.2f") || changed
		changed = slider(&panelX, &panelY, "Whiten (blend to white by density)",
			&cfg.Shading.Whiten, 0, 1, "%.2f") || changed
		changed = slider(&panelX, &panelY, "Alpha max",
			&cfg.Shading.AlphaMax, 0.1, 1, "%.2f") || changed
		changed = slider(&panelX, &panelY, "Visibility floor",
			&cfg.Shading.VisibilityFloor, 0, 0.05, "%.4f") || changed

		if changed {
			shader = sim.NewShader(cfg)
			needsShade = true
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			config.MustInit("")
			cfg = config.Cfg()
			shader = sim.NewShader(cfg)
			needsShade = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "New Field") {
			fillTestField(field)
			needsShade = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		for _, line := range yamlLines(cfg) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(cfg) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled SliderBar bound to a config value and reports
// whether it changed. Advances panelY.
func slider(panelX, panelY *float32, label string, value *float64, minV, maxV float32, format string) bool {
	rl.DrawText(label, int32(*panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18

	cur := float32(*value)
	next := gui.SliderBar(
		rl.Rectangle{X: *panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.2g", minV), fmt.Sprintf("%.2g", maxV),
		cur, minV, maxV,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(*panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.RayWhite)
	*panelY += 35

	if next != cur {
		*value = float64(next)
		return true
	}
	return false
}

func yamlLines(cfg *config.Config) []string {
	return []string{
		"shading:",
		fmt.Sprintf("  visibility_floor: %.4f", cfg.Shading.VisibilityFloor),
		fmt.Sprintf("  normal_scale: %.1f", cfg.Shading.NormalScale),
		fmt.Sprintf("  palette_shift: %.3f", cfg.Shading.PaletteShift),
		fmt.Sprintf("  specular_power: %.0f", cfg.Shading.SpecularPower),
		fmt.Sprintf("  specular_gain: %.2f", cfg.Shading.SpecularGain),
		fmt.Sprintf("  whiten: %.2f", cfg.Shading.Whiten),
		fmt.Sprintf("  alpha_max: %.2f", cfg.Shading.AlphaMax),
	}
}

// fillTestField writes a stroke-like pattern with smooth gradients.
func fillTestField(f *sim.DensityField) {
	seed := float64(rl.GetRandomValue(0, 1000)) * 0.01

	for y := 0; y < f.H; y++ {
		v := (float64(y) + 0.5) / float64(f.H)
		for x := 0; x < f.W; x++ {
			u := (float64(x) + 0.5) / float64(f.W)

			// Curved stroke along a sine path
			cy := 0.5 + 0.25*math.Sin(u*6+seed)
			stroke := math.Exp(-math.Pow((v-cy)*12, 2))

			// Two soft blobs
			b1 := math.Exp(-((u-0.3)*(u-0.3) + (v-0.3)*(v-0.3)) * 40)
			b2 := math.Exp(-((u-0.72)*(u-0.72) + (v-0.65)*(v-0.65)) * 60)

			d := stroke + b1*0.8 + b2*0.9
			if d > 1 {
				d = 1
			}
			f.Set(x, y, float32(d))
		}
	}
}
