package progression

// Cooldown is a binary ready gate refilled by a frame counter. Higher tiers
// refill faster: the wait is base/(tier²+1) frames.
type Cooldown struct {
	Ready bool
	Timer int
}

func NewCooldown() Cooldown {
	return Cooldown{Ready: true}
}

// Threshold is the number of frames a cooldown waits at the given tier. It
// never drops below one frame.
func Threshold(base, tier int) int {
	n := base / (tier*tier + 1)
	if n < 1 {
		return 1
	}
	return n
}

// Trigger consumes the gate. It reports false when the cooldown is still
// recovering.
func (c *Cooldown) Trigger() bool {
	if c == nil || !c.Ready {
		return false
	}
	c.Ready = false
	c.Timer = 0
	return true
}

// Tick advances a recovering cooldown by one frame.
func (c *Cooldown) Tick(base, tier int) {
	if c == nil || c.Ready {
		return
	}
	c.Timer++
	if c.Timer >= base+10 {
		// stuck timer
		c.Timer = 0
		return
	}
	if c.Timer >= Threshold(base, tier) {
		c.Ready = true
		c.Timer = 0
	}
}

// Reset restores the default-enabled state used on level setup.
func (c *Cooldown) Reset() {
	if c == nil {
		return
	}
	*c = NewCooldown()
}
