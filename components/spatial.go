package components

import "github.com/pthm-cable/touchline/vector"

// Position is a player's world position on the pitch.
type Position struct {
	X, Y, Z float32
}

// Velocity is a player's current velocity.
type Velocity struct {
	X, Y, Z float32
}

// Vec returns the position as a vector.
func (p Position) Vec() vector.Vector {
	return vector.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() vector.Vector {
	return vector.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// PositionFrom converts a vector back into a Position component.
func PositionFrom(v vector.Vector) Position {
	return Position{X: v.X, Y: v.Y, Z: v.Z}
}

// VelocityFrom converts a vector back into a Velocity component.
func VelocityFrom(v vector.Vector) Velocity {
	return Velocity{X: v.X, Y: v.Y, Z: v.Z}
}
