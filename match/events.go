package match

// EventKind identifies a player-emitted intent. The state machine never
// mutates shared match state directly; it only emits events, which the
// serialized commit phase acts on.
type EventKind uint8

const (
	EventRequestPass EventKind = iota
	EventShoot
	EventTackle
	EventClaimBall
	EventClearBall
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRequestPass:
		return "request_pass"
	case EventShoot:
		return "shoot"
	case EventTackle:
		return "tackle"
	case EventClaimBall:
		return "claim_ball"
	case EventClearBall:
		return "clear_ball"
	default:
		return "unknown"
	}
}

// PlayerEvent is a tagged intent emitted by a state evaluation.
// TargetID is the pass receiver or tackle victim where applicable, 0 otherwise.
type PlayerEvent struct {
	Kind     EventKind
	PlayerID uint32
	TargetID uint32
}

// NewRequestPassEvent creates a pass request from passer to receiver.
func NewRequestPassEvent(passerID, receiverID uint32) PlayerEvent {
	return PlayerEvent{Kind: EventRequestPass, PlayerID: passerID, TargetID: receiverID}
}

// NewShootEvent creates a shot intent.
func NewShootEvent(playerID uint32) PlayerEvent {
	return PlayerEvent{Kind: EventShoot, PlayerID: playerID}
}

// NewTackleEvent creates a tackle attempt on the ball carrier.
func NewTackleEvent(playerID, targetID uint32) PlayerEvent {
	return PlayerEvent{Kind: EventTackle, PlayerID: playerID, TargetID: targetID}
}

// NewClaimBallEvent creates a loose-ball claim.
func NewClaimBallEvent(playerID uint32) PlayerEvent {
	return PlayerEvent{Kind: EventClaimBall, PlayerID: playerID}
}

// NewClearBallEvent creates a clearance intent.
func NewClearBallEvent(playerID uint32) PlayerEvent {
	return PlayerEvent{Kind: EventClearBall, PlayerID: playerID}
}
