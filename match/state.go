package match

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/vector"
)

// ForwardState enumerates the forward role's behavioral states.
type ForwardState uint8

const (
	ForwardRunning ForwardState = iota
	ForwardPassing
	ForwardDribbling
	ForwardShooting
	ForwardHeadingUpPlay
)

// MidfielderState enumerates the midfielder role's behavioral states.
type MidfielderState uint8

const (
	MidfielderRunning MidfielderState = iota
	MidfielderPassing
	MidfielderPressing
	MidfielderHoldingPossession
)

// DefenderState enumerates the defender role's behavioral states.
type DefenderState uint8

const (
	DefenderCovering DefenderState = iota
	DefenderMarking
	DefenderIntercepting
	DefenderClearing
)

// GoalkeeperState enumerates the goalkeeper role's behavioral states.
type GoalkeeperState uint8

const (
	GoalkeeperStanding GoalkeeperState = iota
	GoalkeeperComingOut
	GoalkeeperDistributing
)

// PlayerState is a closed tagged union over the role-specific state sets.
// Exactly one state is active per player at any time.
type PlayerState struct {
	Role components.Role
	tag  uint8
}

// WithForward wraps a forward state.
func WithForward(s ForwardState) PlayerState {
	return PlayerState{Role: components.RoleForward, tag: uint8(s)}
}

// WithMidfielder wraps a midfielder state.
func WithMidfielder(s MidfielderState) PlayerState {
	return PlayerState{Role: components.RoleMidfielder, tag: uint8(s)}
}

// WithDefender wraps a defender state.
func WithDefender(s DefenderState) PlayerState {
	return PlayerState{Role: components.RoleDefender, tag: uint8(s)}
}

// WithGoalkeeper wraps a goalkeeper state.
func WithGoalkeeper(s GoalkeeperState) PlayerState {
	return PlayerState{Role: components.RoleGoalkeeper, tag: uint8(s)}
}

// DefaultState returns the state a player starts the match in.
func DefaultState(role components.Role) PlayerState {
	switch role {
	case components.RoleGoalkeeper:
		return WithGoalkeeper(GoalkeeperStanding)
	case components.RoleDefender:
		return WithDefender(DefenderCovering)
	case components.RoleMidfielder:
		return WithMidfielder(MidfielderRunning)
	default:
		return WithForward(ForwardRunning)
	}
}

// Forward returns the forward state tag.
func (s PlayerState) Forward() ForwardState { return ForwardState(s.tag) }

// Midfielder returns the midfielder state tag.
func (s PlayerState) Midfielder() MidfielderState { return MidfielderState(s.tag) }

// Defender returns the defender state tag.
func (s PlayerState) Defender() DefenderState { return DefenderState(s.tag) }

// Goalkeeper returns the goalkeeper state tag.
func (s PlayerState) Goalkeeper() GoalkeeperState { return GoalkeeperState(s.tag) }

// String returns "role/state" for logs and telemetry.
func (s PlayerState) String() string {
	return fmt.Sprintf("%s/%s", s.Role, s.name())
}

func (s PlayerState) name() string {
	switch s.Role {
	case components.RoleForward:
		switch s.Forward() {
		case ForwardRunning:
			return "running"
		case ForwardPassing:
			return "passing"
		case ForwardDribbling:
			return "dribbling"
		case ForwardShooting:
			return "shooting"
		case ForwardHeadingUpPlay:
			return "heading_up_play"
		}
	case components.RoleMidfielder:
		switch s.Midfielder() {
		case MidfielderRunning:
			return "running"
		case MidfielderPassing:
			return "passing"
		case MidfielderPressing:
			return "pressing"
		case MidfielderHoldingPossession:
			return "holding_possession"
		}
	case components.RoleDefender:
		switch s.Defender() {
		case DefenderCovering:
			return "covering"
		case DefenderMarking:
			return "marking"
		case DefenderIntercepting:
			return "intercepting"
		case DefenderClearing:
			return "clearing"
		}
	case components.RoleGoalkeeper:
		switch s.Goalkeeper() {
		case GoalkeeperStanding:
			return "standing"
		case GoalkeeperComingOut:
			return "coming_out"
		case GoalkeeperDistributing:
			return "distributing"
		}
	}
	return "unknown"
}

// stateHandler is the evaluation contract every behavioral state implements.
// tryFast runs cheap rule checks every tick; processSlow is the heavier
// opportunistic path consulted only when no fast rule fired; velocity is the
// state's intrinsic movement contribution for the tick.
type stateHandler interface {
	tryFast(ctx *TickContext, p *PlayerSnapshot) *StateChangeResult
	processSlow(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) *StateChangeResult
	velocity(ctx *TickContext, p *PlayerSnapshot, rng *rand.Rand) vector.Vector
}

// handlerFor dispatches over the closed state sets. Unknown tags fall back to
// the role's default state handler.
func handlerFor(s PlayerState) stateHandler {
	switch s.Role {
	case components.RoleForward:
		switch s.Forward() {
		case ForwardPassing:
			return forwardPassing{}
		case ForwardDribbling:
			return forwardDribbling{}
		case ForwardShooting:
			return forwardShooting{}
		case ForwardHeadingUpPlay:
			return forwardHeadingUpPlay{}
		default:
			return forwardRunning{}
		}
	case components.RoleMidfielder:
		switch s.Midfielder() {
		case MidfielderPassing:
			return midfielderPassing{}
		case MidfielderPressing:
			return midfielderPressing{}
		case MidfielderHoldingPossession:
			return midfielderHoldingPossession{}
		default:
			return midfielderRunning{}
		}
	case components.RoleDefender:
		switch s.Defender() {
		case DefenderMarking:
			return defenderMarking{}
		case DefenderIntercepting:
			return defenderIntercepting{}
		case DefenderClearing:
			return defenderClearing{}
		default:
			return defenderCovering{}
		}
	default:
		switch s.Goalkeeper() {
		case GoalkeeperComingOut:
			return goalkeeperComingOut{}
		case GoalkeeperDistributing:
			return goalkeeperDistributing{}
		default:
			return goalkeeperStanding{}
		}
	}
}
