package match

import "github.com/pthm-cable/touchline/vector"

// Ball is the shared match ball. It is mutated only in the serialized commit
// phase and by Integrate, never during parallel evaluation.
type Ball struct {
	Position vector.Vector
	Velocity vector.Vector

	// OwnerID is the possessing player, 0 when the ball is loose.
	OwnerID uint32

	// ReceiverID is the intended receiver while a pass is in flight.
	ReceiverID uint32
}

// Ball flight tuning.
const (
	passSpeedMax   = 22.0 // m/s cap on pass velocity
	passSpeedScale = 1.2  // pass speed per meter of pass distance
	shotSpeed      = 30.0 // m/s
	clearanceSpeed = 26.0 // m/s
	ballDrag       = 0.35 // fraction of velocity lost per second when loose
	receiveRadius  = 1.2  // meters within which a receiver collects a pass
	carryLead      = 0.4  // meters the ball sits ahead of its carrier
)
