// Package components defines the ECS components for match players.
package components

// Side identifies which half a player's team defends.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Role is a player's position group. Each role has its own behavioral state
// set in the match package.
type Role uint8

const (
	RoleGoalkeeper Role = iota
	RoleDefender
	RoleMidfielder
	RoleForward
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "goalkeeper"
	case RoleDefender:
		return "defender"
	case RoleMidfielder:
		return "midfielder"
	case RoleForward:
		return "forward"
	default:
		return "unknown"
	}
}

// PlayerInfo bundles identity and possession state.
type PlayerInfo struct {
	ID      uint32
	TeamID  uint32
	Side    Side
	Role    Role
	HasBall bool
}

// Skills holds the attributes that feed movement limits and decision scoring.
// Physical, Mental, and Technical are 0-100 rating aggregates.
type Skills struct {
	MaxSpeed     float32 // meters per second
	Acceleration float32 // meters per second squared
	Physical     float32
	Mental       float32
	Technical    float32
}
