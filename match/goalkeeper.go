package match

import (
	"math/rand"

	"github.com/pthm-cable/touchline/steering"
	"github.com/pthm-cable/touchline/vector"
)

// goalkeeperStanding holds the line, shadowing the ball.
type goalkeeperStanding struct{}

func (goalkeeperStanding) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if p.HasBall {
		return WithState(WithGoalkeeper(GoalkeeperDistributing))
	}
	ownGoal := ctx.OwnGoal(p.Side)
	if ctx.Ball.OwnerID == 0 &&
		ctx.Ball.Position.DistanceTo(ownGoal) < float32(ctx.cfg.Decision.KeeperOutDistance) {
		return WithState(WithGoalkeeper(GoalkeeperComingOut))
	}
	return nil
}

func (goalkeeperStanding) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (goalkeeperStanding) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	// Stay on the line between the ball and the goal center, a short step out.
	ownGoal := ctx.OwnGoal(p.Side)
	spot := ownGoal.Add(ownGoal.DirectionTo(ctx.Ball.Position).Scale(2))
	return steering.NewArrive(spot, float32(ctx.cfg.Steering.SlowingDistance)).
		Calculate(steeringActor(p), rng).Velocity
}

// goalkeeperComingOut leaves the line to claim a loose ball near goal.
type goalkeeperComingOut struct{}

func (goalkeeperComingOut) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if p.HasBall {
		return WithState(WithGoalkeeper(GoalkeeperDistributing))
	}
	ownGoal := ctx.OwnGoal(p.Side)
	if ctx.Ball.OwnerID != 0 ||
		ctx.Ball.Position.DistanceTo(ownGoal) >= float32(ctx.cfg.Decision.KeeperOutDistance) {
		// Threat passed.
		return WithState(WithGoalkeeper(GoalkeeperStanding))
	}
	if p.Position.DistanceTo(ctx.Ball.Position) < float32(ctx.cfg.Decision.TackleDistance) {
		return NewStateChangeResult().AddEvent(NewClaimBallEvent(p.ID))
	}
	return nil
}

func (goalkeeperComingOut) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (goalkeeperComingOut) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return steering.NewPursuit(ballTarget(ctx)).Calculate(steeringActor(p), rng).Velocity
}

// goalkeeperDistributing restarts play: a short pass when one is on,
// otherwise a long clearance.
type goalkeeperDistributing struct{}

func (goalkeeperDistributing) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithGoalkeeper(GoalkeeperStanding))
	}
	if id := bestPassCandidate(ctx, p); id != 0 {
		return WithState(WithGoalkeeper(GoalkeeperStanding)).
			AddEvent(NewRequestPassEvent(p.ID, id))
	}
	return nil
}

func (goalkeeperDistributing) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	// The keeper net scores short distribution vs. kicking long.
	if out, ok := scoreDecision(ctx, p, "goalkeeper_decision"); ok && out[0] > decisionThreshold {
		// Hold another tick waiting for a lane to open.
		return nil
	}
	return WithState(WithGoalkeeper(GoalkeeperStanding)).
		AddEvent(NewClearBallEvent(p.ID))
}

func (goalkeeperDistributing) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}
