// Package progression holds the player's score-driven power curve and the
// frame-counted state machines that gate weapons and deaths.
package progression

// MaxTier is the highest index the multiplier tables are expected to cover.
const MaxTier = 10

// Ladder is an ascending list of score thresholds. Reaching Ladder[i] grants
// tier i+1.
type Ladder []int

var DefaultLadder = Ladder{100, 500, 1250, 4000, 10000, 25000, 100000, 250000, 1000000}

// TierFor returns the tier earned by score. Thresholds are inclusive.
func (l Ladder) TierFor(score int) int {
	tier := 0
	for i, threshold := range l {
		if score < threshold {
			break
		}
		tier = i + 1
	}
	return tier
}

// Tables are the per-tier multipliers. Indexes past the end reuse the last
// entry; an empty table multiplies by 1.
type Tables struct {
	Damage []float64 `yaml:"damage"`
	Jump   []float64 `yaml:"jump"`
}

func DefaultTables() Tables {
	return Tables{
		Damage: []float64{0.2, 0.25, 1.0 / 3, 0.5, 1, 1.5, 2, 4, 6, 8, 10},
		Jump:   []float64{0.5, 1 / 1.75, 1 / 1.5, 1 / 1.25, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5},
	}
}

func (t Tables) DamageMultiplier(tier int) float64 { return lookup(t.Damage, tier) }

func (t Tables) JumpMultiplier(tier int) float64 { return lookup(t.Jump, tier) }

// Monotonic reports whether both tables are non-decreasing.
func (t Tables) Monotonic() bool {
	return nonDecreasing(t.Damage) && nonDecreasing(t.Jump)
}

func lookup(table []float64, tier int) float64 {
	if len(table) == 0 {
		return 1
	}
	if tier < 0 {
		tier = 0
	}
	if tier >= len(table) {
		tier = len(table) - 1
	}
	return table[tier]
}

func nonDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
