package sim

import (
	"github.com/drift-fx/prism/config"
)

// Simulator advances the density field one tick: backward advection along
// the flow noise, velocity-dependent decay, and injection along the
// pointer's stroke. Every texel of the output depends only on the input
// field and the tick's pointer state, so rows can be evaluated in parallel.
type Simulator struct {
	noise *FlowNoise

	brushRadius  float32
	decayMin     float32
	decayMax     float32
	velocityRamp float32
	injectThresh float32
}

// NewSimulator creates a simulator from config.
func NewSimulator(cfg *config.Config) *Simulator {
	sc := cfg.Simulation
	return &Simulator{
		noise: NewFlowNoise(sc.Seed,
			float32(sc.FlowScale), float32(sc.FlowStrength), float32(sc.FlowEvolve)),
		brushRadius:  float32(sc.BrushRadius),
		decayMin:     float32(sc.DecayMin),
		decayMax:     float32(sc.DecayMax),
		velocityRamp: float32(sc.VelocityRamp),
		injectThresh: float32(sc.IdleThresh),
	}
}

// Noise exposes the flow noise so other layers (sparks) can ride the same
// flow field.
func (s *Simulator) Noise() *FlowNoise {
	return s.noise
}

// DecayFactor maps pointer velocity to the per-tick retention factor.
// A still pointer fades the trail quickly, a fast one leaves a long wake.
// Monotonic in velocity: smoothstep over [0, velocityRamp], constant outside.
func (s *Simulator) DecayFactor(velocity float32) float32 {
	return lerp(s.decayMin, s.decayMax, smoothstep(0, s.velocityRamp, velocity))
}

// Step runs the whole field single-threaded. Equivalent to StepRows over
// [0, dst.H).
func (s *Simulator) Step(dst, src *DensityField, ptr PointerState, elapsed float32) {
	s.StepRows(dst, src, ptr, elapsed, 0, dst.H)
}

// StepRows evaluates rows [y0, y1) of the next field. dst and src must be
// distinct, equally sized buffers; src is read-only during the step.
func (s *Simulator) StepRows(dst, src *DensityField, ptr PointerState, elapsed float32, y0, y1 int) {
	w, h := dst.W, dst.H
	aspect := dst.Aspect()
	decay := s.DecayFactor(ptr.Velocity)
	inject := ptr.Velocity > s.injectThresh

	// Brush endpoints in aspect-corrected coordinates, so distance to the
	// stroke is isotropic on non-square viewports.
	ax := ptr.Prev.X * aspect
	ay := ptr.Prev.Y
	bx := ptr.Cur.X * aspect
	by := ptr.Cur.Y

	for y := y0; y < y1; y++ {
		v := (float32(y) + 0.5) / float32(h)
		row := dst.Data[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / float32(w)

			fx, fy := s.noise.Flow(u, v, elapsed)
			d := src.Sample(u-fx, v-fy) * decay

			if inject {
				dist := segmentDistance(u*aspect, v, ax, ay, bx, by)
				d += 1 - smoothstep(0, s.brushRadius, dist)
			}

			row[x] = clamp01(d)
		}
	}
}
