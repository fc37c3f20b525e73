package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/drift-fx/prism/effect"
)

// SparkRenderer draws the spark layer over the trail.
type SparkRenderer struct {
	screenW, screenH float32
}

// NewSparkRenderer creates a spark renderer for the given screen size.
func NewSparkRenderer(screenW, screenH int32) *SparkRenderer {
	return &SparkRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Resize updates screen dimensions.
func (r *SparkRenderer) Resize(w, h float32) {
	r.screenW = w
	r.screenH = h
}

// Draw renders all live sparks as fading circles.
func (r *SparkRenderer) Draw(sparks *effect.SparkSystem) {
	sparks.Each(func(x, y, size, fade float32) {
		pos := rl.Vector2{X: x * r.screenW, Y: y * r.screenH}

		radius := size * fade
		if radius < 0.5 {
			radius = 0.5
		}

		c := rl.Color{
			R: 255,
			G: 250,
			B: 230,
			A: uint8(fade * 220),
		}
		rl.DrawCircleV(pos, radius, c)
	})
}
