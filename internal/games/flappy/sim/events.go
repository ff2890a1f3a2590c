package sim

// Event is emitted by a Session while it updates. Handlers run
// synchronously on the updating goroutine.
type Event interface {
	isEvent()
}

// Cause tells why a run ended.
type Cause int

const (
	CauseNone Cause = iota
	CauseGround
	CauseObstacle
)

// String returns a human-readable cause.
func (c Cause) String() string {
	switch c {
	case CauseGround:
		return "ground"
	case CauseObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// FlapEvent is emitted when the character flaps.
type FlapEvent struct {
	Tick uint64
}

// ScoredEvent is emitted when a pair is passed.
type ScoredEvent struct {
	Score int
	Tick  uint64
}

// GameOverEvent is emitted exactly once per session.
type GameOverEvent struct {
	Score int
	Cause Cause
	Tick  uint64
}

func (FlapEvent) isEvent()     {}
func (ScoredEvent) isEvent()   {}
func (GameOverEvent) isEvent() {}
