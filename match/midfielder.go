package match

import (
	"math/rand"

	"github.com/pthm-cable/touchline/steering"
	"github.com/pthm-cable/touchline/vector"
)

// midfielderRunning is the midfielder's default state: link play when the
// team has the ball, win it back when it doesn't.
type midfielderRunning struct{}

func (midfielderRunning) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if p.HasBall {
		if ctx.IsUnderPressure(p) {
			return WithState(WithMidfielder(MidfielderPassing))
		}
		if !ctx.HasSupport(p) {
			return WithState(WithMidfielder(MidfielderHoldingPossession))
		}
		return nil
	}
	if carrier, ok := ctx.BallCarrier(); ok && carrier.TeamID != p.TeamID {
		// Press only when closest to the carrier; the rest hold shape.
		if nearestTeammateTo(ctx, p.TeamID, carrier.Position) == p.ID {
			return WithState(WithMidfielder(MidfielderPressing))
		}
	}
	return nil
}

func (midfielderRunning) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	if !p.HasBall {
		return nil
	}
	out, ok := scoreDecision(ctx, p, "midfielder_decision")
	if !ok {
		return nil
	}
	if out[decisionPass] > decisionThreshold && bestPassCandidate(ctx, p) != 0 {
		return WithState(WithMidfielder(MidfielderPassing))
	}
	return nil
}

func (midfielderRunning) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	slowing := float32(ctx.cfg.Steering.SlowingDistance)
	if p.HasBall {
		goal := ctx.OpponentGoal(p.Side)
		return steering.NewArrive(goal, slowing).Calculate(steeringActor(p), rng).Velocity
	}
	// Hold a spot between the ball and own goal to stay available both ways.
	spot := ctx.Ball.Position.Add(ctx.OwnGoal(p.Side).Sub(ctx.Ball.Position).Scale(0.25))
	return steering.NewArrive(spot, slowing).Calculate(steeringActor(p), rng).Velocity
}

// midfielderPassing moves the ball on at the first opportunity.
type midfielderPassing struct{}

func (midfielderPassing) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithMidfielder(MidfielderRunning))
	}
	if id := bestPassCandidate(ctx, p); id != 0 {
		return WithState(WithMidfielder(MidfielderRunning)).
			AddEvent(NewRequestPassEvent(p.ID, id))
	}
	return nil
}

func (midfielderPassing) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	// No lane open: shield the ball until one appears.
	return WithState(WithMidfielder(MidfielderHoldingPossession))
}

func (midfielderPassing) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}

// midfielderPressing hunts the opposing ball carrier.
type midfielderPressing struct{}

func (midfielderPressing) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	carrier, ok := ctx.BallCarrier()
	if !ok || carrier.TeamID == p.TeamID {
		return WithState(WithMidfielder(MidfielderRunning))
	}
	if p.Position.DistanceTo(carrier.Position) < float32(ctx.cfg.Decision.TackleDistance) {
		return WithState(WithMidfielder(MidfielderRunning)).
			AddEvent(NewTackleEvent(p.ID, carrier.ID))
	}
	return nil
}

func (midfielderPressing) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (midfielderPressing) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	if carrier, ok := ctx.BallCarrier(); ok {
		return steering.NewPursuit(steeringTarget(carrier)).Calculate(steeringActor(p), rng).Velocity
	}
	return steering.NewPursuit(ballTarget(ctx)).Calculate(steeringActor(p), rng).Velocity
}

// midfielderHoldingPossession shields the ball until support arrives.
type midfielderHoldingPossession struct{}

func (midfielderHoldingPossession) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithMidfielder(MidfielderRunning))
	}
	if ctx.IsUnderPressure(p) {
		return WithState(WithMidfielder(MidfielderPassing))
	}
	if ctx.HasSupport(p) {
		return WithState(WithMidfielder(MidfielderRunning))
	}
	return nil
}

func (midfielderHoldingPossession) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (midfielderHoldingPossession) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	// Keep the body between the ball and the nearest opponent.
	if opp, ok := ctx.NearestOpponent(p); ok {
		return steering.NewEvade(steeringTarget(opp)).Calculate(steeringActor(p), rng).Velocity
	}
	return vector.Zero
}

// nearestTeammateTo returns the id of the teamID player closest to target.
func nearestTeammateTo(ctx *TickContext, teamID uint32, target vector.Vector) uint32 {
	var nearestID uint32
	best := float32(0)
	for i := range ctx.Players {
		t := &ctx.Players[i]
		if t.TeamID != teamID {
			continue
		}
		d := t.Position.DistanceTo(target)
		if nearestID == 0 || d < best {
			nearestID = t.ID
			best = d
		}
	}
	return nearestID
}
