// Package render draws a level world with flat coloured boxes and a text HUD.
// It reads the world but never changes it.
package render

import "math"

// Camera maps the y-up world onto a y-down screen, centred on PosX/PosY.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	c := &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
	c.PosX = float64(screenW) / 2
	c.PosY = float64(screenH) / 2
	return c
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// SetWorldBounds sets the level size the view is clamped to.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) viewSize() (float64, float64) {
	return float64(c.screenW) / c.zoom, float64(c.screenH) / c.zoom
}

// ViewBottomLeft returns the world-space bottom-left corner of the view.
func (c *Camera) ViewBottomLeft() (float64, float64) {
	w, h := c.viewSize()
	return c.PosX - w/2, c.PosY - h/2
}

// ToScreen maps a world point to screen pixels.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	left, bottom := c.ViewBottomLeft()
	return (x - left) * c.zoom, float64(c.screenH) - (y-bottom)*c.zoom
}

// ToWorld maps a screen pixel, such as the cursor, to a world point.
func (c *Camera) ToWorld(sx, sy float64) (float64, float64) {
	left, bottom := c.ViewBottomLeft()
	return left + sx/c.zoom, bottom + (float64(c.screenH)-sy)/c.zoom
}

// Update eases the camera toward the target. Call it once per frame.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.settle()
}

// SnapTo places the camera without easing, e.g. right after a level load.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.settle()
}

// settle snaps to the pixel grid and clamps to the world bounds.
func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	viewW, viewH := c.viewSize()
	c.PosX = clampAxis(c.PosX, viewW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, viewH/2, c.worldH)
}

func clampAxis(pos, half, size float64) float64 {
	if size <= 0 {
		return pos
	}
	lo, hi := half, size-half
	if hi < lo {
		// world smaller than view: center on world
		return size / 2
	}
	return math.Max(lo, math.Min(hi, pos))
}
