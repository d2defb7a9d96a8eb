package component

// Frame is the singleton clock. Count starts at 0 on level setup.
type Frame struct {
	Count int
	DT    float64
}

var FrameComponent = NewComponent[Frame]()

// LevelInfo is the singleton describing the loaded map.
type LevelInfo struct {
	Index     int
	EndOfMapX float64
	Width     float64
	Height    float64
	FallY     float64
	// Last is set on the final level of the run.
	Last bool
}

var LevelInfoComponent = NewComponent[LevelInfo]()

// Transition is raised by gameplay systems and consumed by the session at
// the end of the frame.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionRespawn
	TransitionNextLevel
	TransitionGameOver
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionRespawn:
		return "respawn"
	case TransitionNextLevel:
		return "next-level"
	case TransitionGameOver:
		return "game-over"
	default:
		return "none"
	}
}

type Transition struct {
	Kind TransitionKind
}

var TransitionComponent = NewComponent[Transition]()
