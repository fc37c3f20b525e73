package sim

import (
	"image/color"
	"math"

	"github.com/drift-fx/prism/config"
)

// Fixed shading weights. These define the look rather than tune it, so they
// stay constants instead of config knobs.
const (
	paletteDensityGain    = 0.8  // density contribution to the palette parameter
	paletteRefractionGain = 2.0  // gradient-magnitude contribution
	alphaDensityBase      = 0.05 // base opacity per unit density
	alphaRefractionGain   = 1.5  // edge visibility
	alphaMidBoost         = 0.5  // low-to-mid density visibility, peaks at d=0.5
	alphaEdgeRamp         = 0.05 // density span of the smooth rising edge
)

// Shader turns the density field into an RGBA layer: pseudo-normals from
// central-difference gradients, a cosine spectral palette with per-channel
// phase shifts for chromatic aberration, a specular highlight, and an alpha
// ramp that keeps thin trail edges visible. Pure given its inputs; rows are
// independent.
type Shader struct {
	floor        float32
	normalScale  float32
	paletteShift float32
	light        [3]float32
	specPower    float64
	specGain     float32
	whiten       float32
	alphaMax     float32
}

// NewShader creates a shader from config.
func NewShader(cfg *config.Config) *Shader {
	sh := cfg.Shading
	return &Shader{
		floor:        float32(sh.VisibilityFloor),
		normalScale:  float32(sh.NormalScale),
		paletteShift: float32(sh.PaletteShift),
		light:        cfg.Derived.LightDir,
		specPower:    sh.SpecularPower,
		specGain:     float32(sh.SpecularGain),
		whiten:       float32(sh.Whiten),
		alphaMax:     float32(sh.AlphaMax),
	}
}

// Floor returns the visibility threshold below which texels are transparent.
func (s *Shader) Floor() float32 {
	return s.floor
}

// Shade runs the whole field single-threaded. Equivalent to ShadeRows over
// [0, field.H).
func (s *Shader) Shade(dst []color.RGBA, field *DensityField) {
	s.ShadeRows(dst, field, 0, field.H)
}

// ShadeRows writes rows [y0, y1) of the output image. dst must hold
// field.W*field.H pixels.
func (s *Shader) ShadeRows(dst []color.RGBA, field *DensityField, y0, y1 int) {
	w := field.W
	for y := y0; y < y1; y++ {
		row := dst[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			d := field.At(x, y)
			if d < s.floor {
				// Below the visibility floor the effect has no edge;
				// fully transparent, nothing else to compute.
				row[x] = color.RGBA{}
				continue
			}

			// Central differences give the local slope of the trail surface.
			dx := field.At(x+1, y) - field.At(x-1, y)
			dy := field.At(x, y+1) - field.At(x, y-1)
			refraction := float32(math.Sqrt(float64(dx*dx + dy*dy)))

			nx := -dx * s.normalScale
			ny := -dy * s.normalScale
			nz := float32(1)
			inv := 1 / float32(math.Sqrt(float64(nx*nx+ny*ny+nz*nz)))
			nx, ny, nz = nx*inv, ny*inv, nz*inv

			// Spectral color with per-channel phase shift: the channels read
			// slightly different palette positions, which separates them at
			// steep gradients like a prism edge.
			t := d*paletteDensityGain + refraction*paletteRefractionGain
			r, _, _ := spectralPalette(t + s.paletteShift)
			_, g, _ := spectralPalette(t)
			_, _, b := spectralPalette(t - s.paletteShift)

			ndotl := nx*s.light[0] + ny*s.light[1] + nz*s.light[2]
			if ndotl < 0 {
				ndotl = 0
			}
			spec := float32(math.Pow(float64(ndotl), s.specPower))

			// Thick trail reads as bright white, thin edges stay colorful.
			white := d * s.whiten
			highlight := spec * s.specGain
			r = clamp01(lerp(r, 1, white) + highlight)
			g = clamp01(lerp(g, 1, white) + highlight)
			b = clamp01(lerp(b, 1, white) + highlight)

			alpha := d*alphaDensityBase +
				refraction*alphaRefractionGain +
				spec +
				d*alphaMidBoost*(1-d)
			alpha = clampFloat(alpha, 0, s.alphaMax)
			alpha *= smoothstep(0, alphaEdgeRamp, d)

			row[x] = color.RGBA{
				R: uint8(r * 255),
				G: uint8(g * 255),
				B: uint8(b * 255),
				A: uint8(alpha * 255),
			}
		}
	}
}

// spectralPalette is a cosine gradient over the rainbow: 0.5+0.5*cos(2π(t+d))
// per channel with a third-of-turn phase between channels.
func spectralPalette(t float32) (r, g, b float32) {
	const twoPi = 2 * math.Pi
	r = 0.5 + 0.5*float32(math.Cos(twoPi*float64(t)))
	g = 0.5 + 0.5*float32(math.Cos(twoPi*float64(t+1.0/3.0)))
	b = 0.5 + 0.5*float32(math.Cos(twoPi*float64(t+2.0/3.0)))
	return r, g, b
}
