// Package firing turns enemy archetypes into projectile spawn requests. It
// never touches the world: callers pass positions and a random source in and
// get a list of spawns back.
package firing

import "math"

// Rand is the subset of *rand.Rand the primitives draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type Point struct {
	X, Y float64
}

// Spawn is one projectile to create. Velocity is per frame.
type Spawn struct {
	X, Y   float64
	VX, VY float64
	Angle  float64 // degrees
	Weapon string
}

// Shooter is where an enemy fires from: its centre and its top edge.
type Shooter struct {
	Center Point
	Top    float64
}

const referenceFPS = 60.0

// AdjustedOdds scales per-frame odds authored at 60 fps to the actual frame
// duration so the expected spawns per second stay 60/baseOdds. The result is
// truncated; the epsilon keeps exact ratios such as 2000 at 120 fps from
// landing one below after float rounding.
func AdjustedOdds(baseOdds int, dt float64) int {
	if dt <= 0 {
		dt = 1 / referenceFPS
	}
	n := int(float64(baseOdds)/(referenceFPS*dt) + 1e-9)
	if n < 1 {
		return 1
	}
	return n
}

// RandFire draws once and fires with probability 1/AdjustedOdds. The shot
// leaves from the shooter's top edge with a fixed velocity.
func RandFire(rng Rand, baseOdds int, dt float64, from Shooter, vx, vy, angle float64, weapon string) (Spawn, bool) {
	if rng == nil || baseOdds <= 0 {
		return Spawn{}, false
	}
	if rng.Intn(AdjustedOdds(baseOdds, dt)) != 0 {
		return Spawn{}, false
	}
	return Spawn{
		X:      from.Center.X,
		Y:      from.Top,
		VX:     vx,
		VY:     vy,
		Angle:  angle,
		Weapon: weapon,
	}, true
}

// AimFire fires on every frame that is a multiple of every, aimed at target
// as it is right now.
func AimFire(frame, every int, speed float64, from, target Point, weapon string) (Spawn, bool) {
	if every <= 0 || frame%every != 0 {
		return Spawn{}, false
	}
	angle := math.Atan2(target.Y-from.Y, target.X-from.X)
	return Spawn{
		X:      from.X,
		Y:      from.Y,
		VX:     math.Cos(angle) * speed,
		VY:     math.Sin(angle) * speed,
		Angle:  angle * 180 / math.Pi,
		Weapon: weapon,
	}, true
}
