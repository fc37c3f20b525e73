// Package components defines ECS components for the spark layer.
package components

// Position is a spark's position in normalized viewport coordinates.
type Position struct {
	X, Y float32
}

// Velocity is a spark's velocity in normalized viewport units per second.
type Velocity struct {
	X, Y float32
}

// Spark holds a spark's lifetime and appearance.
type Spark struct {
	Age  float32 // seconds since spawn
	Life float32 // seconds until removal
	Size float32 // draw radius in pixels
}
