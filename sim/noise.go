package sim

import (
	"github.com/ojrac/opensimplex-go"
)

// FlowNoise derives the advection flow field from animated simplex noise.
// It is deterministic for a given seed: the same (u, v, elapsed) always
// yields the same flow vector, which keeps the simulation reproducible
// given identical pointer and time input.
type FlowNoise struct {
	noise    opensimplex.Noise
	scale    float32
	strength float32
	evolve   float32
}

// NewFlowNoise creates a flow noise source.
// scale is the noise frequency over normalized coordinates, strength the
// advection displacement per tick, evolve the speed of the flow's drift.
func NewFlowNoise(seed int64, scale, strength, evolve float32) *FlowNoise {
	return &FlowNoise{
		noise:    opensimplex.New(seed),
		scale:    scale,
		strength: strength,
		evolve:   evolve,
	}
}

// Eval returns raw noise in [-1, 1] at the given coordinate and time.
func (n *FlowNoise) Eval(x, y, t float32) float32 {
	return float32(n.noise.Eval3(float64(x), float64(y), float64(t)))
}

// Flow returns the advection displacement at normalized coordinate (u, v).
// Two noise evaluations make the vector: the second is phase-shifted so the
// components decorrelate instead of pushing everything along one diagonal.
func (n *FlowNoise) Flow(u, v, elapsed float32) (fx, fy float32) {
	t := elapsed * n.evolve
	x := u * n.scale
	y := v * n.scale
	fx = n.Eval(x, y, t) * n.strength
	fy = n.Eval(x+100, y+100, t) * n.strength
	return fx, fy
}
