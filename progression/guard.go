package progression

// DeathGuard is the life-loss gate. After a hit the player cannot lose
// another life until DeathTimer reaches the protection threshold and any
// invincibility grant has run out.
type DeathGuard struct {
	CanDie        bool
	DeathTimer    int
	Invincibility int
}

func NewDeathGuard() DeathGuard {
	return DeathGuard{CanDie: true}
}

// Hit reports whether a lethal contact costs a life, closing the gate if so.
func (g *DeathGuard) Hit() bool {
	if g == nil || !g.CanDie {
		return false
	}
	g.CanDie = false
	g.DeathTimer = 0
	return true
}

// Grant makes the player invincible for the given number of frames.
func (g *DeathGuard) Grant(frames int) {
	if g == nil || frames <= 0 {
		return
	}
	g.CanDie = false
	g.Invincibility = frames
	g.DeathTimer = 0
}

// Tick advances a closed gate by one frame.
func (g *DeathGuard) Tick(protect int) {
	if g == nil || g.CanDie {
		return
	}
	g.DeathTimer++
	if g.Invincibility > 0 {
		g.Invincibility--
		return
	}
	if g.DeathTimer >= protect {
		g.CanDie = true
		g.DeathTimer = 0
		g.Invincibility = 0
	}
}

func (g *DeathGuard) Invincible() bool {
	return g != nil && g.Invincibility > 0
}

func (g *DeathGuard) Reset() {
	if g == nil {
		return
	}
	*g = NewDeathGuard()
}
