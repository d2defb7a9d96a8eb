package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/jinx/progression"
	"gopkg.in/yaml.v3"
)

const (
	TuningFile = "tuning.yaml"
	FiringFile = "firing.yaml"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning is every designer-tunable constant of the simulation. It is loaded
// once per level and treated as read-only while the level runs.
type Tuning struct {
	Physics PhysicsTuning `yaml:"physics"`
	Player  PlayerTuning  `yaml:"player"`
	Weapons WeaponTuning  `yaml:"weapons"`
	Grenade GrenadeTuning `yaml:"grenade"`
	Tiers   TierTuning    `yaml:"tiers"`
	Map     MapTuning     `yaml:"map"`
}

type PhysicsTuning struct {
	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	Iterations   int     `yaml:"iterations"`
	WallFriction float64 `yaml:"wall_friction"`
	ItemFriction float64 `yaml:"item_friction"`
	ItemMass     float64 `yaml:"item_mass"`
}

type PlayerTuning struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Damping            float64 `yaml:"damping"`
	LadderDamping      float64 `yaml:"ladder_damping"`
	MaxHorizontalSpeed float64 `yaml:"max_horizontal_speed"`
	MaxVerticalSpeed   float64 `yaml:"max_vertical_speed"`
	MoveForceGround    float64 `yaml:"move_force_ground"`
	MoveForceAir       float64 `yaml:"move_force_air"`
	JumpImpulse        float64 `yaml:"jump_impulse"`
	StartLives         int     `yaml:"start_lives"`
	StartGridX         int     `yaml:"start_grid_x"`
	StartGridY         int     `yaml:"start_grid_y"`
	FallY              float64 `yaml:"fall_y"`
	DeathProtectFrames int     `yaml:"death_protect_frames"`
	DeadZone           float64 `yaml:"dead_zone"`
	TextureDistance    float64 `yaml:"texture_distance"`
}

// SpriteBand picks a sprite for every tier up to and including MaxTier.
type SpriteBand struct {
	MaxTier int     `yaml:"max_tier"`
	Sprite  string  `yaml:"sprite"`
	Scale   float64 `yaml:"scale"`
}

type WeaponTuning struct {
	ShootCooldown   int          `yaml:"shoot_cooldown"`
	ShieldCooldown  int          `yaml:"shield_cooldown"`
	BulletSpeed     float64      `yaml:"bullet_speed"`
	BulletDamage    float64      `yaml:"bullet_damage"`
	BulletWidth     float64      `yaml:"bullet_width"`
	BulletHeight    float64      `yaml:"bullet_height"`
	ShieldOffset    float64      `yaml:"shield_offset"`
	ShieldSpeed     float64      `yaml:"shield_speed"`
	ShieldWidth     float64      `yaml:"shield_width"`
	ShieldHeight    float64      `yaml:"shield_height"`
	EnemyBulletSize float64      `yaml:"enemy_bullet_size"`
	BulletBands     []SpriteBand `yaml:"bullet_bands"`
	ShieldBands     []SpriteBand `yaml:"shield_bands"`
}

type GrenadeTuning struct {
	Mass        float64 `yaml:"mass"`
	Gravity     float64 `yaml:"gravity"`
	Force       float64 `yaml:"force"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	Friction    float64 `yaml:"friction"`
	Elasticity  float64 `yaml:"elasticity"`
	Damping     float64 `yaml:"damping"`
	BaseSize    float64 `yaml:"base_size"`
	FallY       float64 `yaml:"fall_y"`
}

type TierTuning struct {
	Ladder []int     `yaml:"ladder"`
	Damage []float64 `yaml:"damage"`
	Jump   []float64 `yaml:"jump"`
}

type MapTuning struct {
	TileScaling  float64 `yaml:"tile_scaling"`
	EnemySize    float64 `yaml:"enemy_size"`
	AllySize     float64 `yaml:"ally_size"`
	TopMargin    float64 `yaml:"top_margin"`
	WalkFrames   int     `yaml:"walk_frames"`
	WalkTicks    int     `yaml:"walk_ticks"`
	ClimbFrames  int     `yaml:"climb_frames"`
	PlayerFrames int     `yaml:"player_frames"`
}

func (t *Tuning) Ladder() progression.Ladder {
	if t == nil || len(t.Tiers.Ladder) == 0 {
		return progression.DefaultLadder
	}
	return progression.Ladder(t.Tiers.Ladder)
}

func (t *Tuning) Tables() progression.Tables {
	if t == nil {
		return progression.DefaultTables()
	}
	return progression.Tables{Damage: t.Tiers.Damage, Jump: t.Tiers.Jump}
}

// BulletBand returns the player bullet sprite for a tier.
func (t *Tuning) BulletBand(tier int) SpriteBand { return pickBand(t.Weapons.BulletBands, tier) }

// ShieldBand returns the shield sprite for a tier.
func (t *Tuning) ShieldBand(tier int) SpriteBand { return pickBand(t.Weapons.ShieldBands, tier) }

func pickBand(bands []SpriteBand, tier int) SpriteBand {
	for _, b := range bands {
		if tier <= b.MaxTier {
			return b
		}
	}
	if len(bands) == 0 {
		return SpriteBand{Scale: 1}
	}
	return bands[len(bands)-1]
}

// Validate rejects tunings the simulation cannot run with.
func (t *Tuning) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrInvalidTuning)
	}
	for i := 1; i < len(t.Tiers.Ladder); i++ {
		if t.Tiers.Ladder[i] <= t.Tiers.Ladder[i-1] {
			return fmt.Errorf("%w: tier ladder must be ascending at %d", ErrInvalidTuning, i)
		}
	}
	if !t.Tables().Monotonic() {
		return fmt.Errorf("%w: tier multipliers must be non-decreasing", ErrInvalidTuning)
	}
	if t.Player.StartLives <= 0 {
		return fmt.Errorf("%w: start_lives must be positive", ErrInvalidTuning)
	}
	if t.Weapons.ShootCooldown <= 0 || t.Weapons.ShieldCooldown <= 0 {
		return fmt.Errorf("%w: cooldowns must be positive", ErrInvalidTuning)
	}
	if t.Map.TileScaling <= 0 {
		return fmt.Errorf("%w: tile_scaling must be positive", ErrInvalidTuning)
	}
	return nil
}

func LoadTuning() (*Tuning, error) {
	spec, err := LoadSpec[Tuning](TuningFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", TuningFile, err)
	}
	return &spec, nil
}

// FiringCallSpec is one firing primitive invocation for an archetype.
type FiringCallSpec struct {
	Kind   string  `yaml:"kind"`
	Odds   int     `yaml:"odds,omitempty"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
	Angle  float64 `yaml:"angle,omitempty"`
	Every  int     `yaml:"every,omitempty"`
	Speed  float64 `yaml:"speed,omitempty"`
	Weapon string  `yaml:"weapon"`
	Script string  `yaml:"script,omitempty"`
}

type FiringSpec struct {
	Archetypes map[string][]FiringCallSpec `yaml:"archetypes"`
}

func LoadFiring() (FiringSpec, error) {
	return LoadSpec[FiringSpec](FiringFile)
}
