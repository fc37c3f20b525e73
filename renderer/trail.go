// Package renderer draws the shaded trail texture and the spark layer on
// top of whatever the host application renders underneath.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TrailLayer streams the shaded field pixels into a GPU texture and
// stretches it over the viewport.
type TrailLayer struct {
	tex        rl.Texture2D
	texW, texH int

	screenW, screenH float32
	initialized      bool
}

// NewTrailLayer creates a trail layer for the given screen size.
func NewTrailLayer(screenW, screenH int32) *TrailLayer {
	return &TrailLayer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Init creates the GPU texture (must be called after the raylib window
// exists).
func (t *TrailLayer) Init(fieldW, fieldH int) {
	if t.initialized {
		return
	}

	t.texW = fieldW
	t.texH = fieldH

	img := rl.GenImageColor(fieldW, fieldH, rl.Blank)
	t.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(t.tex, rl.FilterBilinear)
	rl.UnloadImage(img)

	t.initialized = true
}

// Upload streams new shaded pixels to the GPU texture.
func (t *TrailLayer) Upload(pixels []color.RGBA) {
	if !t.initialized {
		return
	}
	if len(pixels) != t.texW*t.texH {
		return
	}
	rl.UpdateTexture(t.tex, pixels)
}

// Resize recreates the texture for a new field size and updates the
// destination rect.
func (t *TrailLayer) Resize(screenW, screenH float32, fieldW, fieldH int) {
	t.screenW = screenW
	t.screenH = screenH

	if !t.initialized || (fieldW == t.texW && fieldH == t.texH) {
		return
	}

	rl.UnloadTexture(t.tex)
	t.initialized = false
	t.Init(fieldW, fieldH)
}

// Draw stretches the trail texture over the viewport. Alpha comes from the
// shading pass, so the layer composites over the background.
func (t *TrailLayer) Draw() {
	if !t.initialized {
		return
	}

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(t.texW), Height: float32(t.texH)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: t.screenW, Height: t.screenH}

	rl.DrawTexturePro(t.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (t *TrailLayer) Unload() {
	if !t.initialized {
		return
	}
	rl.UnloadTexture(t.tex)
	t.initialized = false
}
