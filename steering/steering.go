// Package steering converts a movement intent into a velocity correction.
//
// Every behavior returns a correction term relative to the actor's current
// velocity, never an absolute velocity. Integration into the stored velocity
// and clamping to skill limits belong to the caller.
package steering

import (
	"math/rand"

	"github.com/pthm-cable/touchline/vector"
)

// Kind selects one of the closed set of steering behaviors.
type Kind uint8

const (
	Seek Kind = iota
	Arrive
	Pursuit
	Evade
	Wander
	Flee
)

// Actor is the moving player a behavior is computed for.
type Actor struct {
	Position vector.Vector
	Velocity vector.Vector
	MaxSpeed float32
}

// Target is another entity referenced by Pursuit and Evade. It carries values
// copied from the tick snapshot, not a live reference.
type Target struct {
	Position vector.Vector
	Velocity vector.Vector
}

// Behavior is a tagged variant over the six steering kinds. Behaviors are
// constructed, calculated, and discarded within a single decision.
type Behavior struct {
	Kind Kind

	Target vector.Vector // Seek, Arrive, Wander, Flee
	Entity Target        // Pursuit, Evade

	SlowingDistance float32 // Arrive
	Radius          float32 // Wander
	Jitter          float32 // Wander
	Distance        float32 // Wander
}

// Output is a velocity/rotation correction to blend into the actor's next
// velocity.
type Output struct {
	Velocity vector.Vector
	Rotation float32
}

// NewSeek steers directly toward a fixed point.
func NewSeek(target vector.Vector) Behavior {
	return Behavior{Kind: Seek, Target: target}
}

// NewArrive steers toward a point, slowing linearly inside slowingDistance.
func NewArrive(target vector.Vector, slowingDistance float32) Behavior {
	return Behavior{Kind: Arrive, Target: target, SlowingDistance: slowingDistance}
}

// NewPursuit steers toward a moving target's predicted position.
func NewPursuit(target Target) Behavior {
	return Behavior{Kind: Pursuit, Entity: target}
}

// NewEvade steers away from a moving target's predicted position.
func NewEvade(target Target) Behavior {
	return Behavior{Kind: Evade, Entity: target}
}

// NewWander produces loose roaming around a persistent wander target.
func NewWander(target vector.Vector, radius, jitter, distance float32) Behavior {
	return Behavior{Kind: Wander, Target: target, Radius: radius, Jitter: jitter, Distance: distance}
}

// NewFlee steers away from a fixed point at max speed.
func NewFlee(target vector.Vector) Behavior {
	return Behavior{Kind: Flee, Target: target}
}

// Calculate evaluates the behavior for the actor. Only Wander consumes rng;
// passing a per-player seeded rng keeps parallel evaluation reproducible.
func (b Behavior) Calculate(a Actor, rng *rand.Rand) Output {
	switch b.Kind {
	case Seek:
		desired := b.Target.Sub(a.Position).Normalize()
		return Output{Velocity: desired.Sub(a.Velocity)}

	case Arrive:
		offset := b.Target.Sub(a.Position)
		distance := offset.Length()
		desiredSpeed := a.MaxSpeed
		if distance < b.SlowingDistance {
			desiredSpeed = distance / b.SlowingDistance * a.MaxSpeed
		}
		desired := offset.Normalize().Scale(desiredSpeed)
		return Output{Velocity: desired.Sub(a.Velocity)}

	case Pursuit:
		predicted := b.predictedPosition(a)
		desired := a.Position.DirectionTo(predicted).Scale(a.MaxSpeed)
		return Output{Velocity: desired.Sub(a.Velocity)}

	case Evade:
		predicted := b.predictedPosition(a)
		desired := predicted.DirectionTo(a.Position).Scale(a.MaxSpeed)
		return Output{Velocity: desired.Sub(a.Velocity)}

	case Wander:
		jittered := vector.RandomInUnitCircle(rng).Scale(b.Jitter).Add(b.Target)
		offset := jittered.Sub(a.Position).Normalize().Scale(b.Distance)
		offset = offset.AddScalar(a.Velocity.Heading() * b.Radius)
		return Output{Velocity: offset.Sub(a.Velocity)}

	case Flee:
		desired := b.Target.DirectionTo(a.Position).Scale(a.MaxSpeed)
		return Output{Velocity: desired.Sub(a.Velocity)}
	}

	return Output{}
}

// predictedPosition extrapolates the target entity over the time the actor
// needs to cover the current separation at max speed.
func (b Behavior) predictedPosition(a Actor) vector.Vector {
	distance := b.Entity.Position.Sub(a.Position).Length()
	prediction := float32(0)
	if a.MaxSpeed > 0 {
		prediction = distance / a.MaxSpeed
	}
	return b.Entity.Position.Add(b.Entity.Velocity.Scale(prediction))
}
