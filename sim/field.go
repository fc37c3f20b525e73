// Package sim implements the fluid-trail effect core: a density field
// advected along procedural flow noise, injected along the pointer's
// stroke, and shaded into an RGBA layer.
package sim

import "math"

// DensityField is a viewport-sized grid of trail intensity values in [0,1].
// Two instances are held in a FieldPair and alternate read/write roles each
// tick; see FieldPair.
type DensityField struct {
	W, H int
	Data []float32
}

// NewDensityField allocates a zeroed field. Dimensions are clamped to >= 1
// so degenerate viewports never divide by zero downstream.
func NewDensityField(w, h int) *DensityField {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &DensityField{
		W:    w,
		H:    h,
		Data: make([]float32, w*h),
	}
}

// At returns the value at texel (x, y) with coordinates clamped to the grid.
// The field is a viewport, not a torus: sampling past an edge reads the edge.
func (f *DensityField) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= f.W {
		x = f.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.H {
		y = f.H - 1
	}
	return f.Data[y*f.W+x]
}

// Set writes v at texel (x, y). Out-of-range coordinates are ignored.
func (f *DensityField) Set(x, y int, v float32) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.Data[y*f.W+x] = v
}

// Sample returns the bilinearly interpolated value at normalized (u, v),
// with edge clamping.
func (f *DensityField) Sample(u, v float32) float32 {
	fx := u*float32(f.W) - 0.5
	fy := v*float32(f.H) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	a := f.At(x0, y0) + (f.At(x0+1, y0)-f.At(x0, y0))*tx
	b := f.At(x0, y0+1) + (f.At(x0+1, y0+1)-f.At(x0, y0+1))*tx
	return a + (b-a)*ty
}

// TexelSize returns (1/W, 1/H).
func (f *DensityField) TexelSize() (float32, float32) {
	return 1 / float32(f.W), 1 / float32(f.H)
}

// Aspect returns width/height.
func (f *DensityField) Aspect() float32 {
	return float32(f.W) / float32(f.H)
}

// Reset zeroes the field.
func (f *DensityField) Reset() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// FieldSummary aggregates a field for telemetry.
type FieldSummary struct {
	Mean     float32
	Max      float32
	Coverage float32 // fraction of texels at or above the floor
}

// Summary scans the field once. floor is the visibility threshold used for
// the coverage fraction.
func (f *DensityField) Summary(floor float32) FieldSummary {
	var sum float64
	var max float32
	covered := 0
	for _, v := range f.Data {
		sum += float64(v)
		if v > max {
			max = v
		}
		if v >= floor {
			covered++
		}
	}
	n := float32(len(f.Data))
	return FieldSummary{
		Mean:     float32(sum) / n,
		Max:      max,
		Coverage: float32(covered) / n,
	}
}
