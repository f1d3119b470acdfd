package match

import (
	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/vector"
)

// PlayerSnapshot is one player's state as observed at tick start.
type PlayerSnapshot struct {
	ID      uint32
	TeamID  uint32
	Side    components.Side
	Role    components.Role
	HasBall bool

	Position vector.Vector
	Velocity vector.Vector
	Skills   components.Skills
	State    PlayerState
}

// BallSnapshot is the ball's state as observed at tick start.
// OwnerID is 0 when the ball is loose.
type BallSnapshot struct {
	Position vector.Vector
	Velocity vector.Vector
	OwnerID  uint32
}

// TickContext is the immutable per-tick snapshot shared read-only by every
// player evaluation. All evaluations within one tick observe the same
// snapshot; no mid-tick mutation is visible to another player's decision.
type TickContext struct {
	// Players ascend by player id — the canonical evaluation order.
	Players []PlayerSnapshot
	index   map[uint32]int

	Ball BallSnapshot

	FieldWidth  float32
	FieldHeight float32
	GoalLeft    vector.Vector
	GoalRight   vector.Vector

	// Time is the elapsed simulated time in seconds at tick start.
	Time float32

	cfg *config.Config
}

// Player looks up a snapshot by id. A miss means the id referenced a player
// removed between snapshot construction and evaluation; callers treat it as
// "no decision this tick".
func (ctx *TickContext) Player(id uint32) (*PlayerSnapshot, bool) {
	i, ok := ctx.index[id]
	if !ok {
		return nil, false
	}
	return &ctx.Players[i], true
}

// OpponentGoal returns the goal the given side attacks.
func (ctx *TickContext) OpponentGoal(side components.Side) vector.Vector {
	switch side {
	case components.SideLeft:
		return ctx.GoalRight
	case components.SideRight:
		return ctx.GoalLeft
	default:
		return vector.Zero
	}
}

// OwnGoal returns the goal the given side defends.
func (ctx *TickContext) OwnGoal(side components.Side) vector.Vector {
	switch side {
	case components.SideLeft:
		return ctx.GoalLeft
	case components.SideRight:
		return ctx.GoalRight
	default:
		return vector.Zero
	}
}

// BallCarrier returns the snapshot of the ball owner, if any.
func (ctx *TickContext) BallCarrier() (*PlayerSnapshot, bool) {
	if ctx.Ball.OwnerID == 0 {
		return nil, false
	}
	return ctx.Player(ctx.Ball.OwnerID)
}

// TeamHasBall reports whether the ball owner plays for teamID.
func (ctx *TickContext) TeamHasBall(teamID uint32) bool {
	carrier, ok := ctx.BallCarrier()
	return ok && carrier.TeamID == teamID
}

// IsUnderPressure reports whether any opponent is inside the pressure
// distance of p.
func (ctx *TickContext) IsUnderPressure(p *PlayerSnapshot) bool {
	pressure := float32(ctx.cfg.Decision.PressureDistance)
	for i := range ctx.Players {
		o := &ctx.Players[i]
		if o.TeamID == p.TeamID {
			continue
		}
		if p.Position.DistanceTo(o.Position) < pressure {
			return true
		}
	}
	return false
}

// HasSupport reports whether any teammate is inside the support distance of p.
func (ctx *TickContext) HasSupport(p *PlayerSnapshot) bool {
	support := float32(ctx.cfg.Decision.SupportDistance)
	for i := range ctx.Players {
		t := &ctx.Players[i]
		if t.TeamID != p.TeamID || t.ID == p.ID {
			continue
		}
		if p.Position.DistanceTo(t.Position) < support {
			return true
		}
	}
	return false
}

// NearestOpponent returns the closest opposing player to p.
func (ctx *TickContext) NearestOpponent(p *PlayerSnapshot) (*PlayerSnapshot, bool) {
	var nearest *PlayerSnapshot
	best := float32(0)
	for i := range ctx.Players {
		o := &ctx.Players[i]
		if o.TeamID == p.TeamID {
			continue
		}
		d := p.Position.DistanceTo(o.Position)
		if nearest == nil || d < best {
			nearest = o
			best = d
		}
	}
	return nearest, nearest != nil
}

// ScoringChance rates p's position on a 0-1 scale from distance to the goal
// it attacks: 1 - distance / field width.
func (ctx *TickContext) ScoringChance(p *PlayerSnapshot) float32 {
	goal := ctx.OpponentGoal(p.Side)
	return 1 - p.Position.DistanceTo(goal)/ctx.FieldWidth
}

// DistanceToOpponentGoal returns p's distance to the goal it attacks.
func (ctx *TickContext) DistanceToOpponentGoal(p *PlayerSnapshot) float32 {
	return p.Position.DistanceTo(ctx.OpponentGoal(p.Side))
}
