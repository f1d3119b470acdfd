package vector

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := New(3, 4, 0).Normalize()
	if math.Abs(float64(v.Length()-1)) > 1e-5 {
		t.Errorf("normalized length = %f, want 1", v.Length())
	}
}

func TestNormalizeZero(t *testing.T) {
	v := Zero.Normalize()
	if v != Zero {
		t.Errorf("Normalize on zero vector = %+v, want zero", v)
	}
	// Must not produce NaN components either.
	if v.X != v.X || v.Y != v.Y || v.Z != v.Z {
		t.Error("Normalize on zero vector produced NaN")
	}
}

func TestDistanceTo(t *testing.T) {
	a := New(0, 0, 0)
	b := New(3, 4, 0)
	if d := a.DistanceTo(b); d != 5 {
		t.Errorf("DistanceTo = %f, want 5", d)
	}
}

func TestDirectionTo(t *testing.T) {
	a := New(1, 1, 0)
	b := New(4, 1, 0)
	d := a.DirectionTo(b)
	if d.X != 1 || d.Y != 0 {
		t.Errorf("DirectionTo = %+v, want unit +X", d)
	}
	if a.DirectionTo(a) != Zero {
		t.Error("DirectionTo self should be zero")
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		vel  Vector
		want float64
	}{
		{New(1, 0, 0), 0},
		{New(0, 1, 0), math.Pi / 2},
		{New(-1, 0, 0), math.Pi},
		{Zero, 0},
	}
	for _, tt := range tests {
		got := float64(tt.vel.Heading())
		if math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("Heading(%+v) = %f, want %f", tt.vel, got, tt.want)
		}
	}
}

func TestRandomInUnitCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		v := RandomInUnitCircle(rng)
		if v.LengthSq() > 1 {
			t.Fatalf("point %+v outside unit circle", v)
		}
		if v.Z != 0 {
			t.Fatalf("point %+v left the XY plane", v)
		}
	}
}

func TestRandomInUnitCircleDeterministic(t *testing.T) {
	a := RandomInUnitCircle(rand.New(rand.NewSource(7)))
	b := RandomInUnitCircle(rand.New(rand.NewSource(7)))
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}
