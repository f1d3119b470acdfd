// Package vector provides the 3D vector math used throughout the match engine.
package vector

import (
	"math"
	"math/rand"
)

// Vector is a 3D vector of float32 components. Pitch coordinates keep Z for
// ball flight; most player math stays in the XY plane.
type Vector struct {
	X, Y, Z float32
}

// Zero is the zero vector.
var Zero = Vector{}

// New creates a vector from components.
func New(x, y, z float32) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float32) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// AddScalar adds s to every component.
func (v Vector) AddScalar(s float32) Vector {
	return Vector{v.X + s, v.Y + s, v.Z + s}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSq returns the squared length of v.
func (v Vector) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns v scaled to unit length. A zero-length input returns the
// zero vector rather than dividing by zero.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Scale(1 / l)
}

// DistanceTo returns the distance between v and o.
func (v Vector) DistanceTo(o Vector) float32 {
	return o.Sub(v).Length()
}

// DirectionTo returns the unit vector from v toward o, or zero when the
// points coincide.
func (v Vector) DirectionTo(o Vector) Vector {
	return o.Sub(v).Normalize()
}

// Heading derives a 2D facing angle in radians from a velocity vector.
// A stationary velocity has no facing; it reports 0.
func (v Vector) Heading() float32 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// RandomInUnitCircle returns a point inside the XY unit circle drawn from rng.
// Rejection sampling keeps the distribution uniform and, given a seeded rng,
// reproducible.
func RandomInUnitCircle(rng *rand.Rand) Vector {
	for {
		x := rng.Float32()*2 - 1
		y := rng.Float32()*2 - 1
		if x*x+y*y <= 1 {
			return Vector{X: x, Y: y}
		}
	}
}
