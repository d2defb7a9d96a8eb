package component

import "github.com/milk9111/jinx/progression"

// PlayerState is the singleton run state carried by the player entity.
// Score and Lives are copied in from the session at level setup.
type PlayerState struct {
	Score          int
	Tier           int
	Lives          int
	Shoot          progression.Cooldown
	Shield         progression.Cooldown
	Guard          progression.DeathGuard
	GrenadeBooster int
	// FireLatched keeps grenade fire going after a Grenades power-up until
	// nothing can be thrown.
	FireLatched bool
	OnLadder    bool
	Grounded    bool
	AimX        float64
	AimY        float64
}

// NewPlayerState returns a state with every gate open.
func NewPlayerState(score, lives int) PlayerState {
	return PlayerState{
		Score:  score,
		Lives:  lives,
		Shoot:  progression.NewCooldown(),
		Shield: progression.NewCooldown(),
		Guard:  progression.NewDeathGuard(),
	}
}

var PlayerStateComponent = NewComponent[PlayerState]()

// Input holds the boolean flags polled by the runner for one frame. AimX and
// AimY are the world point under the cursor.
type Input struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Jump   bool
	Shoot  bool
	Shield bool
	Fire   bool
	AimX   float64
	AimY   float64
}

var InputComponent = NewComponent[Input]()
