package component

// Motion is a per-frame displacement for entities moved outside the physics
// step (bullets, shields, patrolling enemies, moving platforms).
type Motion struct {
	ChangeX float64
	ChangeY float64
}

var MotionComponent = NewComponent[Motion]()

type Direction int

const (
	FacingRight Direction = iota
	FacingLeft
)

func (d Direction) Sign() float64 {
	if d == FacingLeft {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == FacingLeft {
		return "left"
	}
	return "right"
}

type Facing struct {
	Direction Direction
}

var FacingComponent = NewComponent[Facing]()

// Boundary holds optional patrol limits. Nil means no limit on that side.
type Boundary struct {
	Left   *float64
	Right  *float64
	Top    *float64
	Bottom *float64
}

func (b Boundary) Empty() bool {
	return b.Left == nil && b.Right == nil && b.Top == nil && b.Bottom == nil
}

var BoundaryComponent = NewComponent[Boundary]()

// Limit returns a pointer to v for Boundary literals.
func Limit(v float64) *float64 {
	return &v
}
