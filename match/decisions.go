package match

import (
	"github.com/pthm-cable/touchline/neural"
	"github.com/pthm-cable/touchline/steering"
)

// bestPassCandidate finds the teammate to pass to: open (no opponent within
// the clearance radius, within max pass range of the passer) and aligned
// (ball-direction and teammate-direction dot product above the lane cosine
// threshold), preferring the highest scoring chance. Ties keep the earliest
// candidate in snapshot order. Returns 0 when no candidate qualifies.
func bestPassCandidate(ctx *TickContext, p *PlayerSnapshot) uint32 {
	var bestID uint32
	bestScore := float32(0)

	for i := range ctx.Players {
		teammate := &ctx.Players[i]
		if teammate.TeamID != p.TeamID || teammate.ID == p.ID {
			continue
		}
		if !isOpenForPass(ctx, p, teammate) || !inPassingLane(ctx, p, teammate) {
			continue
		}
		score := ctx.ScoringChance(teammate)
		if bestID == 0 || score > bestScore {
			bestID = teammate.ID
			bestScore = score
		}
	}
	return bestID
}

// isOpenForPass checks the candidate is within pass range of the passer and
// no opponent is inside the clearance radius around the candidate.
func isOpenForPass(ctx *TickContext, p, teammate *PlayerSnapshot) bool {
	maxDistance := float32(ctx.cfg.Decision.PassMaxDistance)
	clearance := float32(ctx.cfg.Decision.PassClearance)

	if p.Position.DistanceTo(teammate.Position) > maxDistance {
		return false
	}

	for i := range ctx.Players {
		o := &ctx.Players[i]
		if o.TeamID == p.TeamID {
			continue
		}
		if o.Position.DistanceTo(teammate.Position) <= clearance {
			return false
		}
	}
	return true
}

// inPassingLane checks the candidate sits along the passer's ball direction.
func inPassingLane(ctx *TickContext, p, teammate *PlayerSnapshot) bool {
	laneCosine := float32(ctx.cfg.Decision.PassLaneCosine)
	toBall := p.Position.DirectionTo(ctx.Ball.Position)
	toTeammate := p.Position.DirectionTo(teammate.Position)
	return toBall.Dot(toTeammate) > laneCosine
}

// decisionInputs builds the 6-value input vector shared by the role decision
// networks: goal distance, nearest-opponent distance, support flag, scoring
// chance, and normalized technical/mental ratings.
func decisionInputs(ctx *TickContext, p *PlayerSnapshot) []float32 {
	oppDist := ctx.FieldWidth
	if opp, ok := ctx.NearestOpponent(p); ok {
		oppDist = p.Position.DistanceTo(opp.Position)
	}
	support := float32(0)
	if ctx.HasSupport(p) {
		support = 1
	}
	return []float32{
		ctx.DistanceToOpponentGoal(p) / ctx.FieldWidth,
		oppDist / ctx.FieldWidth,
		support,
		ctx.ScoringChance(p),
		p.Skills.Technical / 100,
		p.Skills.Mental / 100,
	}
}

// scoreDecision evaluates the named network for p. A load failure disables
// the slow path for the dependent state rather than aborting the tick.
func scoreDecision(ctx *TickContext, p *PlayerSnapshot, network string) ([]float32, bool) {
	net, err := neural.ForName(network)
	if err != nil {
		return nil, false
	}
	out, err := net.Forward(decisionInputs(ctx, p))
	if err != nil {
		return nil, false
	}
	return out, true
}

// steeringActor adapts a snapshot for the steering package.
func steeringActor(p *PlayerSnapshot) steering.Actor {
	return steering.Actor{
		Position: p.Position,
		Velocity: p.Velocity,
		MaxSpeed: p.Skills.MaxSpeed,
	}
}

// steeringTarget adapts a snapshot into a pursuit/evade target.
func steeringTarget(p *PlayerSnapshot) steering.Target {
	return steering.Target{Position: p.Position, Velocity: p.Velocity}
}

// ballTarget adapts the ball into a pursuit target.
func ballTarget(ctx *TickContext) steering.Target {
	return steering.Target{Position: ctx.Ball.Position, Velocity: ctx.Ball.Velocity}
}
