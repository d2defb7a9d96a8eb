package component

// Transform is a centre-anchored box in world space. Y grows upward.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (t Transform) Left() float64   { return t.X - t.Width/2 }
func (t Transform) Right() float64  { return t.X + t.Width/2 }
func (t Transform) Top() float64    { return t.Y + t.Height/2 }
func (t Transform) Bottom() float64 { return t.Y - t.Height/2 }

var TransformComponent = NewComponent[Transform]()
