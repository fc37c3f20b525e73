package sim

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothstep is the GLSL-style hermite ramp over [edge0, edge1].
func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// segmentDistance returns the distance from point (px,py) to the segment
// (ax,ay)-(bx,by). Degenerate segments collapse to point distance.
func segmentDistance(px, py, ax, ay, bx, by float32) float32 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	t := float32(0)
	if lenSq > 0 {
		t = clamp01(((px-ax)*dx + (py-ay)*dy) / lenSq)
	}
	cx := ax + dx*t
	cy := ay + dy*t
	ex := px - cx
	ey := py - cy
	return float32(math.Sqrt(float64(ex*ex + ey*ey)))
}
