package match

import (
	"math/rand"

	"github.com/pthm-cable/touchline/steering"
	"github.com/pthm-cable/touchline/vector"
)

// defenderCovering is the defender's default state: hold a position between
// the ball and the own goal.
type defenderCovering struct{}

func (defenderCovering) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if p.HasBall {
		return WithState(WithDefender(DefenderClearing))
	}
	carrier, hasCarrier := ctx.BallCarrier()
	if hasCarrier && carrier.TeamID != p.TeamID {
		// Pick up the carrier once they threaten the covered zone.
		ownGoal := ctx.OwnGoal(p.Side)
		if carrier.Position.DistanceTo(ownGoal) < ctx.FieldWidth*0.5 &&
			nearestTeammateTo(ctx, p.TeamID, carrier.Position) == p.ID {
			return WithState(WithDefender(DefenderMarking))
		}
		return nil
	}
	if !hasCarrier {
		// Loose ball: the closest defender goes for it.
		if nearestTeammateTo(ctx, p.TeamID, ctx.Ball.Position) == p.ID {
			return WithState(WithDefender(DefenderIntercepting))
		}
	}
	return nil
}

func (defenderCovering) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (defenderCovering) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	ownGoal := ctx.OwnGoal(p.Side)
	spot := ctx.Ball.Position.Add(ownGoal.Sub(ctx.Ball.Position).Scale(0.4))
	return steering.NewArrive(spot, float32(ctx.cfg.Steering.SlowingDistance)).
		Calculate(steeringActor(p), rng).Velocity
}

// defenderMarking tracks the opposing ball carrier and tackles in range.
type defenderMarking struct{}

func (defenderMarking) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	carrier, ok := ctx.BallCarrier()
	if !ok || carrier.TeamID == p.TeamID {
		return WithState(WithDefender(DefenderCovering))
	}
	if p.Position.DistanceTo(carrier.Position) < float32(ctx.cfg.Decision.TackleDistance) {
		return WithState(WithDefender(DefenderCovering)).
			AddEvent(NewTackleEvent(p.ID, carrier.ID))
	}
	return nil
}

func (defenderMarking) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (defenderMarking) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	if carrier, ok := ctx.BallCarrier(); ok {
		return steering.NewPursuit(steeringTarget(carrier)).Calculate(steeringActor(p), rng).Velocity
	}
	return vector.Zero
}

// defenderIntercepting races to a loose ball.
type defenderIntercepting struct{}

func (defenderIntercepting) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if ctx.Ball.OwnerID != 0 {
		// Somebody got there first.
		return WithState(WithDefender(DefenderCovering))
	}
	if p.Position.DistanceTo(ctx.Ball.Position) < float32(ctx.cfg.Decision.TackleDistance) {
		return WithState(WithDefender(DefenderCovering)).
			AddEvent(NewClaimBallEvent(p.ID))
	}
	return nil
}

func (defenderIntercepting) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (defenderIntercepting) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return steering.NewPursuit(ballTarget(ctx)).Calculate(steeringActor(p), rng).Velocity
}

// defenderClearing gets the ball out of the defensive zone: a short pass when
// a lane is open, otherwise a clearance upfield.
type defenderClearing struct{}

func (defenderClearing) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithDefender(DefenderCovering))
	}
	if ctx.IsUnderPressure(p) {
		// No time to pick a pass.
		return WithState(WithDefender(DefenderCovering)).
			AddEvent(NewClearBallEvent(p.ID))
	}
	return nil
}

func (defenderClearing) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	out, ok := scoreDecision(ctx, p, "defender_decision")
	if ok && out[decisionPass] > decisionThreshold {
		if id := bestPassCandidate(ctx, p); id != 0 {
			return WithState(WithDefender(DefenderCovering)).
				AddEvent(NewRequestPassEvent(p.ID, id))
		}
	}
	return WithState(WithDefender(DefenderCovering)).
		AddEvent(NewClearBallEvent(p.ID))
}

func (defenderClearing) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}
