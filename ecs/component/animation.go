package component

type AnimState int

const (
	AnimIdle AnimState = iota
	AnimWalk
	AnimJump
	AnimFall
	AnimClimb
)

func (s AnimState) String() string {
	switch s {
	case AnimWalk:
		return "walk"
	case AnimJump:
		return "jump"
	case AnimFall:
		return "fall"
	case AnimClimb:
		return "climb"
	default:
		return "idle"
	}
}

// Animation tracks which texture frame a renderer should show.
type Animation struct {
	State     AnimState
	Frame     int
	Frames    int
	Tick      int
	OdometerX float64
	OdometerY float64
}

var AnimationComponent = NewComponent[Animation]()
