package match

import (
	"math/rand"

	"github.com/pthm-cable/touchline/steering"
	"github.com/pthm-cable/touchline/vector"
)

// Decision network output indices for outfield roles.
const (
	decisionDribble = iota
	decisionPass
	decisionShoot
)

// decisionThreshold is the minimum network score before the slow path acts on
// a suggestion. Inference is advisory; below this the state holds.
const decisionThreshold = 0.55

// forwardRunning is the forward's default state: make ground toward the
// opponent goal, chase loose balls, and let the decision network pick the
// next action once in possession.
type forwardRunning struct{}

func (forwardRunning) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return nil
	}
	if ctx.IsUnderPressure(p) {
		return WithState(WithForward(ForwardPassing))
	}
	if ctx.DistanceToOpponentGoal(p) < float32(ctx.cfg.Decision.ShootingDistance) {
		return WithState(WithForward(ForwardShooting))
	}
	return nil
}

func (forwardRunning) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	if !p.HasBall {
		return nil
	}
	out, ok := scoreDecision(ctx, p, "forward_decision")
	if !ok {
		return nil
	}

	best, bestScore := decisionDribble, out[decisionDribble]
	for i := decisionPass; i <= decisionShoot; i++ {
		if out[i] > bestScore {
			best, bestScore = i, out[i]
		}
	}
	if bestScore < decisionThreshold {
		return WithState(WithForward(ForwardHeadingUpPlay))
	}

	switch best {
	case decisionPass:
		return WithState(WithForward(ForwardPassing))
	case decisionShoot:
		return WithState(WithForward(ForwardShooting))
	default:
		return WithState(WithForward(ForwardDribbling))
	}
}

func (forwardRunning) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	if p.HasBall {
		goal := ctx.OpponentGoal(p.Side)
		out := steering.NewArrive(goal, float32(ctx.cfg.Steering.SlowingDistance)).Calculate(steeringActor(p), rng)
		return out.Velocity
	}
	if !ctx.TeamHasBall(p.TeamID) {
		out := steering.NewPursuit(ballTarget(ctx)).Calculate(steeringActor(p), rng)
		return out.Velocity
	}
	// Team in possession: push up between the ball and the opponent goal.
	goal := ctx.OpponentGoal(p.Side)
	supportSpot := ctx.Ball.Position.Add(goal.Sub(ctx.Ball.Position).Scale(0.3))
	out := steering.NewArrive(supportSpot, float32(ctx.cfg.Steering.SlowingDistance)).Calculate(steeringActor(p), rng)
	return out.Velocity
}

// forwardPassing releases the ball to the best available candidate.
type forwardPassing struct{}

func (forwardPassing) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithForward(ForwardRunning))
	}
	if id := bestPassCandidate(ctx, p); id != 0 {
		return WithState(WithForward(ForwardRunning)).
			AddEvent(NewRequestPassEvent(p.ID, id))
	}
	return nil
}

func (forwardPassing) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	// Nobody to pass to: keep the ball moving instead of standing on it.
	return WithState(WithForward(ForwardDribbling))
}

func (forwardPassing) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}

// forwardDribbling carries the ball toward goal with a loose roaming motion.
type forwardDribbling struct{}

func (forwardDribbling) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithForward(ForwardRunning))
	}
	if ctx.IsUnderPressure(p) {
		return WithState(WithForward(ForwardPassing))
	}
	if ctx.DistanceToOpponentGoal(p) < float32(ctx.cfg.Decision.ShootingDistance) {
		return WithState(WithForward(ForwardShooting))
	}
	return nil
}

func (forwardDribbling) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	out, ok := scoreDecision(ctx, p, "forward_decision")
	if !ok {
		return nil
	}
	if out[decisionPass] > decisionThreshold && bestPassCandidate(ctx, p) != 0 {
		return WithState(WithForward(ForwardPassing))
	}
	return nil
}

func (forwardDribbling) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	goal := ctx.OpponentGoal(p.Side)
	st := ctx.cfg.Steering
	wanderTarget := p.Position.Add(p.Position.DirectionTo(goal).Scale(float32(st.WanderDistance)))
	out := steering.NewWander(wanderTarget,
		float32(st.WanderRadius), float32(st.WanderJitter), float32(st.WanderDistance)).
		Calculate(steeringActor(p), rng)
	return out.Velocity
}

// forwardShooting fires at goal and returns to running.
type forwardShooting struct{}

func (forwardShooting) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithForward(ForwardRunning))
	}
	return WithState(WithForward(ForwardRunning)).
		AddEvent(NewShootEvent(p.ID))
}

func (forwardShooting) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (forwardShooting) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}

// forwardHeadingUpPlay is the forward leading an attack: hold the ball, look
// for a pass, and otherwise push toward the opponent goal.
type forwardHeadingUpPlay struct{}

func (forwardHeadingUpPlay) tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult {
	if !p.HasBall {
		return WithState(WithForward(ForwardRunning))
	}

	if ctx.IsUnderPressure(p) {
		return WithState(WithForward(ForwardPassing))
	}

	if !ctx.HasSupport(p) {
		return WithState(WithForward(ForwardDribbling))
	}

	if id := bestPassCandidate(ctx, p); id != 0 {
		if _, ok := ctx.Player(id); !ok {
			// Candidate vanished between snapshot and evaluation: no decision
			// this tick.
			return nil
		}
		return WithState(WithForward(ForwardRunning)).
			AddEvent(NewRequestPassEvent(p.ID, id))
	}

	// Move towards the opponent's goal at half acceleration.
	direction := p.Position.DirectionTo(ctx.OpponentGoal(p.Side))
	return NewStateChangeResult().
		SetVelocity(direction.Scale(p.Skills.Acceleration * 0.5))
}

func (forwardHeadingUpPlay) processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult {
	return nil
}

func (forwardHeadingUpPlay) velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector {
	return vector.Zero
}
