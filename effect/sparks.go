package effect

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/drift-fx/prism/components"
	"github.com/drift-fx/prism/config"
	"github.com/drift-fx/prism/sim"
)

// SparkSystem manages short-lived particles emitted along fast pointer
// strokes. Sparks ride the same flow field as the density trail.
type SparkSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Spark]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Spark]
	rng    *rand.Rand
	noise  *sim.FlowNoise

	enabled  bool
	max      int
	spawnVel float32
	rate     int
	life     float32
	size     float32

	count int
}

// NewSparkSystem creates the spark layer. noise is shared with the
// simulator so sparks drift with the trail.
func NewSparkSystem(cfg *config.Config, noise *sim.FlowNoise) *SparkSystem {
	world := ecs.NewWorld()

	return &SparkSystem{
		world:    world,
		mapper:   ecs.NewMap3[components.Position, components.Velocity, components.Spark](world),
		filter:   ecs.NewFilter3[components.Position, components.Velocity, components.Spark](world),
		rng:      rand.New(rand.NewSource(cfg.Simulation.Seed)),
		noise:    noise,
		enabled:  cfg.Sparks.Enabled,
		max:      cfg.Sparks.Max,
		spawnVel: float32(cfg.Sparks.SpawnVelocity),
		rate:     cfg.Sparks.Rate,
		life:     float32(cfg.Sparks.Life),
		size:     float32(cfg.Sparks.Size),
	}
}

// Update spawns, advects and expires sparks for one tick.
func (s *SparkSystem) Update(dt float32, ptr sim.PointerState, elapsed float32) {
	if !s.enabled {
		return
	}

	s.spawn(ptr)

	// Advect by the flow field plus the spark's own velocity, age, and
	// collect the dead. Removal happens after the query closes; removing
	// entities mid-iteration invalidates the query.
	var dead []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, vel, spark := query.Get()

		fx, fy := s.noise.Flow(pos.X, pos.Y, elapsed)
		pos.X += vel.X*dt + fx
		pos.Y += vel.Y*dt + fy

		// Friction so stroke momentum fades into the flow
		vel.X *= 0.94
		vel.Y *= 0.94

		spark.Age += dt
		if spark.Age >= spark.Life || pos.X < 0 || pos.X > 1 || pos.Y < 0 || pos.Y > 1 {
			dead = append(dead, query.Entity())
		}
	}

	for _, e := range dead {
		s.mapper.Remove(e)
	}
	s.count -= len(dead)
}

// spawn emits sparks along the most recent pointer segment when the
// stroke is fast enough.
func (s *SparkSystem) spawn(ptr sim.PointerState) {
	if ptr.Velocity < s.spawnVel {
		return
	}

	for i := 0; i < s.rate && s.count < s.max; i++ {
		// Place along the stroke segment with a little jitter.
		t := s.rng.Float32()
		x := ptr.Prev.X + (ptr.Cur.X-ptr.Prev.X)*t
		y := ptr.Prev.Y + (ptr.Cur.Y-ptr.Prev.Y)*t
		x += (s.rng.Float32() - 0.5) * 0.01
		y += (s.rng.Float32() - 0.5) * 0.01

		// Initial velocity follows the stroke direction, scaled down and
		// scattered so a burst fans out.
		dx := ptr.Cur.X - ptr.Prev.X
		dy := ptr.Cur.Y - ptr.Prev.Y
		scatter := 0.5 + s.rng.Float32()

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{
			X: dx * scatter * 2,
			Y: dy * scatter * 2,
		}
		spark := components.Spark{
			Age:  0,
			Life: s.life * (0.5 + s.rng.Float32()),
			Size: s.size * (0.5 + s.rng.Float32()),
		}

		s.mapper.NewEntity(&pos, &vel, &spark)
		s.count++
	}
}

// Count returns the number of live sparks.
func (s *SparkSystem) Count() int {
	return s.count
}

// Each calls fn for every live spark with its normalized position, pixel
// size and remaining-life fade in [0, 1].
func (s *SparkSystem) Each(fn func(x, y, size, fade float32)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, spark := query.Get()

		fade := float32(1)
		if spark.Life > 0 {
			fade = 1 - spark.Age/spark.Life
		}
		if fade < 0 {
			fade = 0
		}

		fn(pos.X, pos.Y, spark.Size, fade)
	}
}
